package brd

import "github.com/mfedotov/brdforge/internal/model"

// Fixed document sections. These carry standard BRD content that does not
// depend on project facts; the functions return fresh slices so callers can
// never share backing arrays across documents.

func acceptanceCriteria() []string {
	return []string{
		"Functionality meets specified requirement completely",
		"No critical or high-severity defects present",
		"Performance meets defined benchmarks",
		"Stakeholder approval obtained",
	}
}

func successCriteria() []string {
	return []string{
		"Successful implementation of all critical requirements",
		"Stakeholder alignment on key technical decisions",
		"Compliance with all regulatory and security standards",
		"On-time delivery within approved budget constraints",
	}
}

func expectedOutcomes() []string {
	return []string{
		"Enhanced operational efficiency",
		"Improved stakeholder satisfaction",
		"Reduced technical debt and operational risk",
		"Scalable foundation for future enhancements",
	}
}

const communicationPlan = "Regular status updates will be provided through weekly stakeholder meetings and bi-weekly project reports. Critical decisions will be escalated immediately to executive stakeholders."

func performanceRequirements() []string {
	return []string{
		"System must handle concurrent user load with response time < 2 seconds",
		"99.9% uptime availability during business hours",
	}
}

func scalabilityRequirements() []string {
	return []string{
		"Architecture must support 3x growth in user base",
		"Database design must accommodate future feature expansion",
	}
}

func defaultAssumptions() model.Assumptions {
	return model.Assumptions{
		Title: "Assumptions",
		Business: []string{
			"Stakeholder availability for timely decision-making",
			"Budget allocation remains stable throughout project lifecycle",
			"Market conditions remain favorable for project objectives",
		},
		Technical: []string{
			"Current technology stack is adequate for requirements",
			"Third-party integrations will remain stable and supported",
			"Development team has necessary expertise",
		},
		Resource: []string{
			"Key personnel will remain available throughout project",
			"Required infrastructure and tools are accessible",
			"External dependencies will be delivered on schedule",
		},
	}
}

func defaultTimeline() model.Timeline {
	return model.Timeline{
		Title: "Timeline",
		Phases: []model.Phase{
			{
				Phase:    "Phase 1: Requirements & Design",
				Duration: "2-3 weeks",
				Deliverables: []string{
					"Detailed technical specifications",
					"Architecture diagrams",
					"Database schema",
				},
			},
			{
				Phase:    "Phase 2: Development",
				Duration: "6-8 weeks",
				Deliverables: []string{
					"Core functionality implementation",
					"Integration with external systems",
					"Unit and integration tests",
				},
			},
			{
				Phase:    "Phase 3: Testing & QA",
				Duration: "2-3 weeks",
				Deliverables: []string{
					"Comprehensive test execution",
					"Bug fixes and optimization",
					"Performance testing",
				},
			},
			{
				Phase:    "Phase 4: Deployment & Launch",
				Duration: "1-2 weeks",
				Deliverables: []string{
					"Production deployment",
					"User training",
					"Go-live support",
				},
			},
		},
		Milestones: []model.Milestone{
			{Milestone: "Requirements sign-off", Date: "Week 2"},
			{Milestone: "Development checkpoint", Date: "Week 6"},
			{Milestone: "UAT completion", Date: "Week 11"},
			{Milestone: "Production launch", Date: "Week 13"},
		},
	}
}

func defaultSuccessMetrics() model.SuccessMetrics {
	return model.SuccessMetrics{
		Title: "Success Metrics",
		KPIs: []model.KPI{
			{
				Metric:      "Project Completion",
				Target:      "100% of critical requirements delivered",
				Measurement: "Acceptance testing results",
			},
			{
				Metric:      "Budget Adherence",
				Target:      "Within 10% of approved budget",
				Measurement: "Monthly financial reports",
			},
			{
				Metric:      "Schedule Adherence",
				Target:      "Launch within 2 weeks of planned date",
				Measurement: "Project timeline tracking",
			},
			{
				Metric:      "Stakeholder Satisfaction",
				Target:      "Average rating > 4.0/5.0",
				Measurement: "Post-project stakeholder survey",
			},
		},
	}
}
