package session

import "sort"

// SubjectMinutes is the time credited to one subject.
type SubjectMinutes struct {
	Subject  string
	Sessions int
	Minutes  int
}

// Summary aggregates a set of credited activities, e.g. one day's sessions.
type Summary struct {
	Sessions      int
	TotalMinutes  int
	StudyMinutes  int
	ReviewMinutes int
	BySubject     []SubjectMinutes // most minutes first
}

// BuildSummary totals activities per subject.
func BuildSummary(activities []Activity) *Summary {
	s := &Summary{}
	idx := make(map[string]int)
	for _, a := range activities {
		s.Sessions++
		s.TotalMinutes += a.Minutes
		switch a.Kind {
		case KindReview:
			s.ReviewMinutes += a.Minutes
		default:
			s.StudyMinutes += a.Minutes
		}

		i, ok := idx[a.Subject]
		if !ok {
			i = len(s.BySubject)
			idx[a.Subject] = i
			s.BySubject = append(s.BySubject, SubjectMinutes{Subject: a.Subject})
		}
		s.BySubject[i].Sessions++
		s.BySubject[i].Minutes += a.Minutes
	}

	sort.SliceStable(s.BySubject, func(i, j int) bool {
		return s.BySubject[i].Minutes > s.BySubject[j].Minutes
	})
	return s
}
