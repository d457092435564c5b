package analytics

func sampleRecords() []Record {
	return WithIntensity([]Record{
		{Activity: "Sports High", GPA: 3.2, WellBeing: 8},
		{Activity: "Chess Low", GPA: 3.8, WellBeing: 6},
		{Activity: "Music", GPA: 3.5, WellBeing: 7},
		{Activity: "Sports High", GPA: 3.0, WellBeing: 9},
		{Activity: UnknownActivity, GPA: 2.9, WellBeing: 5},
		{Activity: "Chess Low", GPA: 3.6, WellBeing: 6.5},
		{Activity: "Music", GPA: 3.3, WellBeing: 7.5},
	})
}
