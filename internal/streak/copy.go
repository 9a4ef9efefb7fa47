package streak

import "fmt"

// Modal is the content of one reaction modal presentation.
type Modal struct {
	Variant     Variant
	Title       string
	Text        string
	ButtonLabel string
}

// milestones are the streak counts that get celebratory milestone copy.
var milestones = map[int]bool{
	30: true, 60: true, 90: true, 120: true, 150: true,
	180: true, 210: true, 240: true, 270: true, 300: true,
}

// IsMilestone reports whether count sits in the milestone set.
func IsMilestone(count int) bool {
	return milestones[count]
}

func positiveModal(count int) Modal {
	if IsMilestone(count) {
		return Modal{
			Variant:     VariantPositive,
			Title:       "Milestone reached!",
			Text:        fmt.Sprintf("That's %d days of logging in a row. Incredible!", count),
			ButtonLabel: "Onwards!",
		}
	}
	return Modal{
		Variant:     VariantPositive,
		Title:       "Nice work!",
		Text:        fmt.Sprintf("Day %d of your logging streak. Come back tomorrow!", count),
		ButtonLabel: "Will do!",
	}
}

func brokenModal() Modal {
	return Modal{
		Variant:     VariantBroken,
		Title:       "Caught you slacking!",
		Text:        "No entry yesterday, so your streak is broken. Ouch.",
		ButtonLabel: "Logging one now!",
	}
}

func overviewModal(snap Snapshot) Modal {
	switch {
	case snap.Broken:
		return Modal{
			Variant:     VariantOverview,
			Title:       "Current streak: 0 days",
			Text:        "No active streak right now. Today is a fine day to restart.",
			ButtonLabel: "Okay",
		}
	case snap.Count > 0:
		return Modal{
			Variant:     VariantOverview,
			Title:       fmt.Sprintf("Current streak: %d days", snap.Count),
			Text:        fmt.Sprintf("%d days in a row and counting. Next milestone ahead!", snap.Count),
			ButtonLabel: "Okay",
		}
	default:
		return Modal{
			Variant:     VariantOverview,
			Title:       "No streak yet",
			Text:        "Log your first entry today and the counting begins.",
			ButtonLabel: "Let's go",
		}
	}
}
