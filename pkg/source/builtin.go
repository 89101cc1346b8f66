package source

import (
	"tableflip.dev/ampcred/pkg/event"
	"tableflip.dev/ampcred/pkg/record"
)

// Builtin returns the seed the console ships with.
func Builtin() *Static {
	return &Static{
		Name:       "builtin",
		EventList:  builtinEvents(),
		RecordList: builtinRecords(),
	}
}

func builtinEvents() []event.Event {
	return []event.Event{
		{ID: "evt-staff-sync", Title: "Staff sync", Day: 2, Time: "09:00", Lane: "Operations"},
		{ID: "evt-podcast", Title: "Podcast recording: Faith at Work", Day: 3, Time: "14:00", Lane: "Media"},
		{ID: "evt-board", Title: "Board of directors", Day: 5, Time: "18:30", Lane: "Board"},
		{ID: "evt-sermon-prep", Title: "Sermon series planning", Day: 5, Time: "10:00", Lane: "Teaching"},
		{ID: "evt-campus", Title: "Campus chapel talk", Day: 8, Time: "11:00", Lane: "Speaking"},
		{ID: "evt-newsletter", Title: "Newsletter send", Day: 9, Time: "07:00", Lane: "Media"},
		{ID: "evt-retreat", Title: "Leadership retreat", Day: 12, Time: "", Lane: "Travel"},
		{ID: "evt-retreat-2", Title: "Leadership retreat, day two", Day: 13, Time: "", Lane: "Travel"},
		{ID: "evt-mentoring", Title: "Mentoring cohort", Day: 15, Time: "19:00", Lane: "Teaching"},
		{ID: "evt-donor", Title: "Donor lunch", Day: 16, Time: "12:15", Lane: "Partnerships"},
		{ID: "evt-video", Title: "Video shoot: book trailer", Day: 18, Time: "08:30", Lane: "Media"},
		{ID: "evt-conference", Title: "Regional conference keynote", Day: 21, Time: "16:00", Lane: "Speaking"},
		{ID: "evt-grant", Title: "Grant report due", Day: 24, Time: "17:00", Lane: "Operations"},
		{ID: "evt-writing", Title: "Manuscript writing block", Day: 26, Time: "06:30", Lane: "Teaching"},
		{ID: "evt-quarterly", Title: "Quarterly review", Day: 28, Time: "15:00", Lane: "Board"},
	}
}

func builtinRecords() []record.Record {
	return []record.Record{
		{
			ID:       "doc-brand",
			Title:    "Brand Guidelines",
			Category: "Documents",
			Abstract: "Logo usage, **color palette**, and typography for print and web.",
			Updated:  "2025-03-14",
			Tags:     []string{"brand", "design"},
		},
		{
			ID:       "doc-speaker-kit",
			Title:    "Speaker Kit",
			Category: "Documents",
			Abstract: "Bio variants, headshots, and AV requirements for event hosts.",
			Updated:  "2025-01-22",
			Tags:     []string{"speaking", "press"},
		},
		{
			ID:       "doc-board-minutes",
			Title:    "Board Minutes, Q4",
			Category: "Documents",
			Abstract: "Approved budget, governance updates, and next-quarter priorities.",
			Updated:  "2024-12-18",
			Tags:     []string{"board", "governance"},
		},
		{
			ID:       "vol-foundations",
			Title:    "Foundations of Faithful Leadership",
			Category: "Volumes",
			Abstract: "The first volume: character, calling, and community.",
			Year:     2019,
			Tags:     []string{"book", "leadership"},
		},
		{
			ID:       "vol-workplace",
			Title:    "Work as Worship",
			Category: "Volumes",
			Abstract: "Essays on vocation and integrity in the marketplace.",
			Year:     2022,
			Tags:     []string{"book", "vocation"},
		},
		{
			ID:       "vol-devotional",
			Title:    "Daily Bread: A 90-Day Devotional",
			Category: "Volumes",
			Abstract: "Short readings with reflection prompts.",
			Year:     2024,
			Tags:     []string{"devotional"},
		},
		{
			ID:       "res-engagement",
			Title:    "Audience Engagement Survey",
			Category: "Research",
			Abstract: "Survey of 1,200 listeners on format preferences and *topics of interest*.",
			Updated:  "2025-02-03",
			Tags:     []string{"survey", "media"},
		},
		{
			ID:       "res-giving",
			Title:    "Giving Trends 2020–2024",
			Category: "Research",
			Abstract: "Donor retention and recurring-gift analysis.",
			Updated:  "2024-10-09",
			Tags:     []string{"partnerships", "finance"},
		},
		{
			ID:       "res-mentoring",
			Title:    "Mentoring Outcomes Study",
			Category: "Research",
			Abstract: "Two-year follow-up of cohort participants.",
			Year:     2023,
			Tags:     []string{"teaching", "cohort"},
		},
	}
}
