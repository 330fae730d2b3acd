package recruitment

// MatchRecord holds the skill-overlap scoring outcome for one
// (candidate, vacancy) pair. AdjustedScore may be negative; downstream
// consumers treat that as a legitimate low-rank signal, not an error.
type MatchRecord struct {
	Candidate     string
	Vacancy       string
	MatchScore    float64
	Penalty       float64
	AdjustedScore float64
}

// FinalRecord is the fully annotated candidate-vacancy record consumed by the
// filter pipeline and reporting collaborators.
type FinalRecord struct {
	Name    string
	Vacancy string

	MatchScore    float64
	Penalty       float64
	AdjustedScore float64

	CandidateTimezone string
	TeamTimezone      string
	OffsetHours       float64
	OverlapHours      float64
	TimezoneScore     float64
	TimezoneLevel     string
	Recommendation    string
	// TimezoneFallback is set when the resolver could not resolve a location
	// and substituted UTC, so reports can flag the score as uncertain.
	TimezoneFallback bool

	EmotionalState string
	IssueCount     int

	Recruiter *Recruiter

	MeetingRecommendation string
	MeetingLocalTimes     []string
}

type FinalRecords struct {
	Items []*FinalRecord
}

func (f *FinalRecords) Len() int {
	return len(f.Items)
}

func (f *FinalRecords) Append(records ...*FinalRecord) {
	f.Items = append(f.Items, records...)
}

// ByCandidate groups records by candidate name, preserving first-seen order
// of both candidates and their records.
func (f *FinalRecords) ByCandidate() ([]string, map[string][]*FinalRecord) {
	order := make([]string, 0)
	grouped := make(map[string][]*FinalRecord)
	for _, record := range f.Items {
		if _, ok := grouped[record.Name]; !ok {
			order = append(order, record.Name)
		}
		grouped[record.Name] = append(grouped[record.Name], record)
	}
	return order, grouped
}
