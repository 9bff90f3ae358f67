package report

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.html
var templateFS embed.FS

var documentTemplate = template.Must(
	template.New("report").
		Funcs(template.FuncMap{"inc": func(i int) int { return i + 1 }}).
		ParseFS(templateFS, "templates/*.html"),
)

// page: 印刷用ページのデータ（Letter か Stats のどちらか）
type page struct {
	Title  string
	Letter *Letter
	Stats  *StatisticsDocument
}

func letterPage(l Letter) render.HTML {
	return render.HTML{Template: documentTemplate, Name: "document", Data: page{Title: l.Title, Letter: &l}}
}

func statisticsPage(d StatisticsDocument) render.HTML {
	return render.HTML{Template: documentTemplate, Name: "document", Data: page{Title: d.Title, Stats: &d}}
}
