package models

// CategoryDef describes one report category: its REST path segment, the
// metrics a submission carries and the Bengali display label for each metric.
// These are static configuration, not persisted per user.
type CategoryDef struct {
	Key        string            `json:"key"`
	Endpoint   string            `json:"endpoint"`
	LabelMap   map[string]string `json:"labelMap"`
	// MetricOrder keeps tables and PDFs stable across renders; LabelMap alone
	// would give map iteration order.
	MetricOrder []string `json:"metricOrder"`
	// ListFields are metrics whose raw value is an array (visit lists,
	// assistant rosters). They are kept raw for detail modals and flattened
	// to numbered HTML for tables.
	ListFields []string `json:"listFields,omitempty"`
}

// Categories holds all nine report categories in display order.
var Categories = []CategoryDef{
	{
		Key:      "moktob",
		Endpoint: "/api/v1/reports/moktob",
		LabelMap: map[string]string{
			"notunMoktobChalu":     "নতুন মক্তব চালু হয়েছে",
			"totalMoktob":          "মোট মক্তব",
			"totalStudent":         "মোট ছাত্র-ছাত্রী",
			"obhibhabokConference": "অভিভাবক সম্মেলন",
			"moktobVisit":          "মক্তব ভিজিট",
			"madrasaVisit":         "মাদরাসা ভিজিট",
			"madrasaVisitList":     "ভিজিটকৃত মাদরাসার তালিকা",
			"schoolCollegeVisit":   "স্কুল/কলেজ ভিজিট",
		},
		MetricOrder: []string{
			"notunMoktobChalu", "totalMoktob", "totalStudent",
			"obhibhabokConference", "moktobVisit", "madrasaVisit",
			"madrasaVisitList", "schoolCollegeVisit",
		},
		ListFields: []string{"madrasaVisitList"},
	},
	{
		Key:      "dawati",
		Endpoint: "/api/v1/reports/dawati",
		LabelMap: map[string]string{
			"nonMuslimDawat":    "অমুসলিমকে দাওয়াত",
			"murtadDawat":       "মুরতাদকে দাওয়াত",
			"alemderSatheyMojlish": "আলেমদের সাথে মজলিশ",
			"publicSatheyMojlish":  "সাধারণ মানুষের সাথে মজলিশ",
			"nonMuslimSaptahikGasht": "সাপ্তাহিক গাশত",
		},
		MetricOrder: []string{
			"nonMuslimDawat", "murtadDawat", "alemderSatheyMojlish",
			"publicSatheyMojlish", "nonMuslimSaptahikGasht",
		},
	},
	{
		Key:      "jamat",
		Endpoint: "/api/v1/reports/jamat",
		LabelMap: map[string]string{
			"jamatBerHoise":  "জামাত বের হয়েছে",
			"jamatSathi":     "জামাতের সাথী",
		},
		MetricOrder: []string{"jamatBerHoise", "jamatSathi"},
	},
	{
		Key:      "dinefera",
		Endpoint: "/api/v1/reports/dinefera",
		LabelMap: map[string]string{
			"nonMuslimMuslimHoise": "অমুসলিম মুসলিম হয়েছে",
			"murtadIslamFireche":   "মুরতাদ ইসলামে ফিরেছে",
		},
		MetricOrder: []string{"nonMuslimMuslimHoise", "murtadIslamFireche"},
	},
	{
		Key:      "sofor",
		Endpoint: "/api/v1/reports/sofor",
		LabelMap: map[string]string{
			"madrasaVisit":       "মাদরাসা সফর",
			"madrasaVisitList":   "সফরকৃত মাদরাসার তালিকা",
			"moktobVisit":        "মক্তব সফর",
			"schoolCollegeVisit": "স্কুল/কলেজ সফর",
		},
		MetricOrder: []string{
			"madrasaVisit", "madrasaVisitList", "moktobVisit", "schoolCollegeVisit",
		},
		ListFields: []string{"madrasaVisitList"},
	},
	{
		Key:      "talim",
		Endpoint: "/api/v1/reports/talim",
		LabelMap: map[string]string{
			"mohilaTalim":      "মহিলাদের তালিম",
			"mohilaOnshogrohon": "তালিমে অংশগ্রহণকারী মহিলা",
		},
		MetricOrder: []string{"mohilaTalim", "mohilaOnshogrohon"},
	},
	{
		Key:      "dayi",
		Endpoint: "/api/v1/reports/dayi",
		LabelMap: map[string]string{
			"sohojogiDayeToiri": "সহযোগী দায়ী তৈরি",
			"assistants":        "সহযোগীদের তালিকা",
		},
		MetricOrder: []string{"sohojogiDayeToiri", "assistants"},
		ListFields:  []string{"assistants"},
	},
	{
		Key:      "amoli",
		Endpoint: "/api/v1/reports/amoli",
		LabelMap: map[string]string{
			"tahajjud":    "তাহাজ্জুদ",
			"surah":       "সূরা",
			"ayat":        "আয়াত",
			"zikir":       "যিকির",
			"ishraq":      "ইশরাক/আওয়াবিন/চাশ্ত",
			"jamat":       "জামাতে সালাত",
			"sirat":       "সিরাত/মাগাজি",
			"Dua":         "দোয়া",
			"ilm":         "ইলম",
			"tasbih":      "তাসবিহ",
			"dayeeAmol":   "দায়ীদের আমল",
			"amoliSura":   "আমলী সূরা",
			"ayamroja":    "আইয়ামে বীজের রোজা",
			"hijbulBahar": "হিজবুল বাহার",
		},
		MetricOrder: []string{
			"tahajjud", "surah", "ayat", "zikir", "ishraq", "jamat", "sirat",
			"Dua", "ilm", "tasbih", "dayeeAmol", "amoliSura", "ayamroja",
			"hijbulBahar",
		},
	},
	{
		Key:      "dawatimojlish",
		Endpoint: "/api/v1/reports/dawatimojlish",
		LabelMap: map[string]string{
			"dawatterGuruttoMojlish":   "দাওয়াতের গুরুত্ব মজলিশ",
			"mojlisheOnshogrohon":      "মজলিশে অংশগ্রহণ",
			"prosikkhonKormoshalaAyojon": "প্রশিক্ষণ কর্মশালা আয়োজন",
			"prosikkhonOnshogrohon":    "কর্মশালায় অংশগ্রহণ",
			"jummahAlochona":           "জুমার আলোচনা",
		},
		MetricOrder: []string{
			"dawatterGuruttoMojlish", "mojlisheOnshogrohon",
			"prosikkhonKormoshalaAyojon", "prosikkhonOnshogrohon",
			"jummahAlochona",
		},
	},
}

// CategoryByKey returns the definition for key, or false when unknown.
func CategoryByKey(key string) (CategoryDef, bool) {
	for _, c := range Categories {
		if c.Key == key {
			return c, true
		}
	}
	return CategoryDef{}, false
}

// IsListField reports whether metric holds an array value in this category.
func (c CategoryDef) IsListField(metric string) bool {
	for _, f := range c.ListFields {
		if f == metric {
			return true
		}
	}
	return false
}
