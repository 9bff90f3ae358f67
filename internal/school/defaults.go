package school

const DefaultCutoffTime = "07:00"

const defaultAbsenceTemplate = `بسم الله الرحمن الرحيم

المملكة العربية السعودية
وزارة التعليم
إدارة التعليم بمنطقة ________
مدرسة: {{schoolName}}

مساءلة غياب

الأخ المعلم / {{teacherName}}                                                    حفظه الله

السلام عليكم ورحمة الله وبركاته،،، وبعد:

نفيدكم بأنه قد تغيبتم عن العمل بدون عذر مقبول في الفترة من {{startDate}} إلى {{endDate}} بإجمالي ({{totalDays}}) يوم/أيام.

لذا نأمل منكم توضيح أسباب هذا الغياب كتابياً خلال ثلاثة أيام من تاريخه.

والله يحفظكم،،،

مدير المدرسة
{{principalName}}

التاريخ: {{currentDate}}`

const defaultTardinessTemplate = `بسم الله الرحمن الرحيم

المملكة العربية السعودية
وزارة التعليم
إدارة التعليم بمنطقة ________
مدرسة: {{schoolName}}

مساءلة تأخر

الأخ المعلم / {{teacherName}}                                                    حفظه الله

السلام عليكم ورحمة الله وبركاته،،، وبعد:

نفيدكم بأنه قد تم رصد تأخركم عن الحضور في الأوقات التالية:

{{tardinessDetails}}

لذا نأمل منكم الالتزام بأوقات الدوام الرسمي وتوضيح أسباب هذا التأخر كتابياً.

والله يحفظكم،،،

مدير المدرسة
{{principalName}}

التاريخ: {{currentDate}}`

// DefaultConfig は未保存時に返す設定
func DefaultConfig() Config {
	return Config{
		TardinessCutoffTime: DefaultCutoffTime,
		Teachers:            []Teacher{},
		AbsenceTemplate:     defaultAbsenceTemplate,
		TardinessTemplate:   defaultTardinessTemplate,
	}
}
