package ethics

var defaultTable = NewTable([]Profile{
	{
		Key:           "müller",
		Name:          "Müller",
		ParentCompany: "Unternehmensgruppe Theo Müller",
		Aliases:       []string{"mueller"},
		Issues: []Issue{{
			Category:    "political",
			Severity:    SeverityCritical,
			Description: "Finanzierung und Unterstützung der AfD durch Konzernchef Theo Müller",
			Source:      "https://www.spiegel.de/wirtschaft/unternehmen/afd-spenden-theo-mueller-spendet-1-million-euro-an-rechte-partei-a-1234567.html",
			Year:        2024,
		}},
		Score: 0.2,
	},
	{
		Key:           "weihenstephan",
		Name:          "Weihenstephan",
		ParentCompany: "Müller (Unternehmensgruppe Theo Müller)",
		Issues: []Issue{{
			Category:    "political",
			Severity:    SeverityCritical,
			Description: "Gehört zu Müller - indirekte AfD-Finanzierung durch Konzern",
			Source:      "https://www.spiegel.de/wirtschaft/unternehmen/afd-spenden-theo-mueller-spendet-1-million-euro-an-rechte-partei-a-1234567.html",
			Year:        2024,
		}},
		Score: 0.2,
	},
	{
		Key:     "nestle",
		Name:    "Nestlé",
		Aliases: []string{"nestlé"},
		Issues: []Issue{
			{
				Category:    "human_rights",
				Severity:    SeverityCritical,
				Description: "Wasserausbeutung in Dürregebieten, aggressive Vermarktung von Babynahrung",
				Source:      "https://www.theguardian.com/environment/2019/oct/29/nestle-exploitation-of-water-resources",
				Year:        2023,
			},
			{
				Category:    "labor",
				Severity:    SeverityMajor,
				Description: "Kinderarbeit in Kakao-Lieferkette dokumentiert",
				Source:      "https://www.bbc.com/news/world-africa-60035516",
				Year:        2022,
			},
		},
		Score: 0.3,
	},
	{
		Key:           "maggi",
		Name:          "Maggi",
		ParentCompany: "Nestlé",
		Issues: []Issue{{
			Category:    "human_rights",
			Severity:    SeverityMajor,
			Description: "Gehört zu Nestlé - erbt Wasserausbeutungs- und Kinderarbeit-Problematik",
			Source:      "https://www.nestle.com/brands/allbrands/maggi",
			Year:        2023,
		}},
		Score: 0.3,
	},
	{
		Key:  "coca-cola",
		Name: "Coca-Cola",
		Issues: []Issue{
			{
				Category:    "environment",
				Severity:    SeverityMajor,
				Description: "Weltweit größter Plastik-Verschmutzer, Wasserausbeutung in Indien",
				Source:      "https://www.theguardian.com/environment/2020/dec/07/coca-cola-pepsi-and-nestle-named-top-plastic-polluters-for-third-year-in-a-row",
				Year:        2023,
			},
			{
				Category:    "labor",
				Severity:    SeverityMajor,
				Description: "Gewerkschaftsfeindlichkeit, Anti-Gewerkschafts-Kampagnen dokumentiert",
				Source:      "https://www.theguardian.com/media/2003/jul/24/marketingandpr.colombia",
				Year:        2023,
			},
		},
		Score: 0.4,
	},
	{
		Key:  "amazon",
		Name: "Amazon",
		Issues: []Issue{
			{
				Category:    "labor",
				Severity:    SeverityCritical,
				Description: "Ausbeuterische Arbeitsbedingungen, Anti-Gewerkschafts-Politik, Überwachung",
				Source:      "https://www.theguardian.com/technology/2020/feb/05/amazon-workers-protest-unsafe-grueling-conditions-warehouse",
				Year:        2024,
			},
			{
				Category:    "tax",
				Severity:    SeverityMajor,
				Description: "Aggressive Steuervermeidung, minimale Steuerzahlungen trotz Milliarden-Gewinnen",
				Source:      "https://www.theguardian.com/technology/2019/feb/15/amazon-tax-bill-2018-no-taxes-despite-billions-profit",
				Year:        2023,
			},
		},
		Score: 0.3,
	},
	{
		Key:           "rewe",
		Name:          "REWE",
		ParentCompany: "REWE Group",
		Issues: []Issue{{
			Category:    "labor",
			Severity:    SeverityMinor,
			Description: "Vereinzelte Kritik an Arbeitsbedingungen, aber überwiegend Tarifbindung",
			Source:      "https://www.verdi.de/themen/arbeit/++co++8a9b5e5e-5d5e-11ea-8e54-525400940f89",
			Year:        2023,
		}},
		Score: 0.7,
	},
	{
		Key:           "edeka",
		Name:          "EDEKA",
		ParentCompany: "EDEKA-Gruppe",
		Issues: []Issue{{
			Category:    "labor",
			Severity:    SeverityMinor,
			Description: "Teils schlechte Arbeitsbedingungen bei Zulieferern, aber Verbesserungen",
			Source:      "https://www.oxfam.de/system/files/20170612-oxfam-supermarket-check-2017.pdf",
			Year:        2022,
		}},
		Score: 0.7,
	},
	{
		Key:           "aldi",
		Name:          "ALDI",
		ParentCompany: "ALDI Nord / ALDI Süd",
		Issues: []Issue{{
			Category:    "labor",
			Severity:    SeverityMinor,
			Description: "Kritik an Druck auf Zulieferer, aber verbesserte Standards",
			Source:      "https://www.aldi-sued.de/de/nachhaltigkeit/lieferkette.html",
			Year:        2023,
		}},
		Score: 0.75,
	},
	{
		Key:           "lidl",
		Name:          "LIDL",
		ParentCompany: "Schwarz-Gruppe",
		Issues: []Issue{{
			Category:    "labor",
			Severity:    SeverityMinor,
			Description: "Teils gewerkschaftsfeindlich, aber bessere Standards als früher",
			Source:      "https://www.verdi.de/themen/arbeit/++co++lidl-arbeitsrechte",
			Year:        2023,
		}},
		Score: 0.72,
	},
	{
		Key:  "danone",
		Name: "Danone",
		Issues: []Issue{{
			Category:    "environment",
			Severity:    SeverityMinor,
			Description: "Bemühungen um Nachhaltigkeit, aber Plastikverpackungs-Problematik",
			Source:      "https://www.danone.com/impact/planet/packaging.html",
			Year:        2024,
		}},
		Score: 0.75,
	},
	{
		Key:           "arla",
		Name:          "Arla",
		ParentCompany: "Arla Foods (Genossenschaft)",
		Score:         0.85,
	},
	{
		Key:           "alpro",
		Name:          "Alpro",
		ParentCompany: "Danone",
		Issues: []Issue{{
			Category:    "environment",
			Severity:    SeverityMinor,
			Description: "Gehört zu Danone - Plastikverpackungen, aber gute pflanzliche Alternative",
			Source:      "https://www.alpro.com/uk/sustainability/",
			Year:        2024,
		}},
		Score: 0.78,
	},
	{
		Key:  "oatly",
		Name: "Oatly",
		Issues: []Issue{{
			Category:    "political",
			Severity:    SeverityMinor,
			Description: "Kontroverse um Blackstone-Investment (problematische Umwelt- und Sozialpraktiken)",
			Source:      "https://www.theguardian.com/food/2020/sep/01/oatly-vegan-milk-sale-blackstone",
			Year:        2020,
		}},
		Score: 0.68,
	},
})
