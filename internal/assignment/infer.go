package assignment

import "strings"

// Default tags when inference finds no keyword hit.
const (
	DefaultArea   = "tech"
	DefaultRegion = "Remote"
)

// areaKeywords is scanned in order; the first area with a keyword hit wins.
var areaKeywords = []struct {
	area     string
	keywords []string
}{
	{"tech", []string{"developer", "engineer", "backend", "frontend", "data", "cloud", "devops", "software"}},
	{"admin", []string{"administrative", "assistant", "support", "coordinator", "operations"}},
	{"marketing", []string{"marketing", "content", "social media", "seo", "growth"}},
	{"design", []string{"designer", "ux", "ui", "graphic", "product design"}},
	{"finance", []string{"accountant", "finance", "controller", "analyst"}},
}

var regionKeywords = []struct {
	region   string
	keywords []string
}{
	{"LATAM", []string{"colombia", "dominican", "argentina", "peru", "mexico", "chile", "brazil", "venezuela", "ecuador", "uruguay", "paraguay", "bolivia"}},
	{"US", []string{"usa", "united states", "canada", "new york", "california"}},
	{"EU", []string{"spain", "madrid", "london", "uk", "france", "germany", "italy", "portugal"}},
}

// InferArea guesses the specialty area from a vacancy title.
func InferArea(vacancyTitle string) string {
	title := strings.ToLower(vacancyTitle)
	for _, entry := range areaKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(title, keyword) {
				return entry.area
			}
		}
	}
	return DefaultArea
}

// InferRegion guesses the home region from a free-text location.
func InferRegion(location string) string {
	loc := strings.ToLower(location)
	for _, entry := range regionKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(loc, keyword) {
				return entry.region
			}
		}
	}
	return DefaultRegion
}
