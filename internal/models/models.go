package models

const (
	UserRoleAdmin  = "admin"
	UserRoleEditor = "editor"
)

// Service categories shared by services, case studies, contacts and testimonials.
var ServiceCategories = []string{
	"Digital Marketing",
	"SEO",
	"Social Media",
	"Content Marketing",
	"Web Development",
	"Branding",
	"PPC Advertising",
	"Email Marketing",
	"Analytics",
	"Consulting",
}

var BlogCategories = []string{
	"Digital Marketing",
	"SEO",
	"Social Media",
	"Content Marketing",
	"Web Development",
	"Branding",
	"Analytics",
	"E-commerce",
	"Technology",
	"Business",
}

var Industries = []string{
	"Technology",
	"Healthcare",
	"Finance",
	"E-commerce",
	"Education",
	"Real Estate",
	"Manufacturing",
	"Retail",
	"Hospitality",
	"Automotive",
	"Food & Beverage",
	"Non-Profit",
	"Other",
}

var Budgets = []string{
	"< $5,000",
	"$5,000 - $10,000",
	"$10,000 - $25,000",
	"$25,000 - $50,000",
	"$50,000+",
	"Not sure",
}

var Timelines = []string{
	"ASAP",
	"1-3 months",
	"3-6 months",
	"6+ months",
	"Flexible",
}

var ContactSources = []string{
	"Website",
	"Google",
	"Social Media",
	"Referral",
	"Email",
	"Advertisement",
	"Other",
}

var TestimonialSources = []string{
	"direct",
	"google",
	"linkedin",
	"facebook",
	"clutch",
	"email",
	"other",
}

// TestimonialServices is the service enumeration plus the "General" default.
var TestimonialServices = append(append([]string{}, ServiceCategories...), "General")

var PricingModels = []string{"fixed", "hourly", "monthly", "project-based", "custom"}

// Contains reports whether value is one of values.
func Contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
