package survey

import "strings"

// softwareEngineerKeywords identify software-engineering job titles
var softwareEngineerKeywords = []string{
	"software engineer", "software developer", "programmer", "developer",
	"software architect", "software lead", "senior software", "principal software",
	"staff software", "software specialist", "software analyst",
}

// techKeywords identify tech roles more broadly
var techKeywords = []string{
	"software", "developer", "engineer", "programmer", "analyst", "architect",
	"data scientist", "data engineer", "devops", "sre", "site reliability",
	"product manager", "technical", "systems", "network", "security",
	"machine learning", "ml engineer", "ai engineer", "backend", "frontend",
	"full stack", "mobile developer", "ios", "android", "web developer",
	"cloud engineer", "platform engineer", "infrastructure",
}

// techIndustryKeywords identify tech-industry survey answers
var techIndustryKeywords = []string{
	"computing or tech", "technology", "software",
}

// IsSoftwareEngineerTitle reports whether a lower-cased job title matches a
// software-engineering keyword
func IsSoftwareEngineerTitle(titleLower string) bool {
	return containsAny(titleLower, softwareEngineerKeywords)
}

// IsTechRoleTitle reports whether a lower-cased job title matches a tech
// keyword
func IsTechRoleTitle(titleLower string) bool {
	return containsAny(titleLower, techKeywords)
}

// IsTechIndustry reports whether an industry answer names a tech industry
func IsTechIndustry(industry string) bool {
	return containsAny(strings.ToLower(industry), techIndustryKeywords)
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
