package normalizer

// Attraction categories accepted by the vacation schema.
const (
	CategoryFree     = "free"
	CategoryPaid     = "paid"
	CategoryOptional = "optional"
)

func schemaFor(kind Kind, expectedDays int) (rule, bool) {
	switch kind {
	case KindVacation:
		return vacationSchema(expectedDays), true
	case KindRelocation:
		return relocationSchema(), true
	}
	return nil, false
}

func minMax() rule {
	return object(req("min", num()), req("max", num()))
}

func costLine() rule {
	return object(req("min", num()), req("max", num()), opt("notes", str()))
}

func strList() rule { return list(str(), 0) }

func activityBlock() rule {
	return object(
		req("name", str()),
		req("location", str()),
		req("cost", num()),
		req("duration", str()),
		req("description", str()),
	)
}

func vacationSchema(days int) rule {
	day := object(
		req("day", integer(1)),
		req("morning", activityBlock()),
		req("afternoon", activityBlock()),
		req("evening", activityBlock()),
		req("dailyCost", num()),
		opt("notes", strList()),
	)
	itinerary := list(day, 1)
	if days > 0 {
		itinerary = listOfLength(day, days)
	}

	return object(
		req("overview", object(
			req("climate", str()),
			req("bestTime", str()),
			req("characteristics", str()),
		)),
		req("itinerary", itinerary),
		req("costs", object(
			req("accommodation", costLine()),
			req("food", costLine()),
			req("transportation", costLine()),
			req("attractions", costLine()),
			req("miscellaneous", costLine()),
			req("totalDaily", minMax()),
		)),
		req("attractions", list(object(
			req("name", str()),
			req("cost", num()),
			req("category", enum(CategoryFree, CategoryPaid, CategoryOptional)),
			req("description", str()),
			opt("tips", strList()),
		), 0)),
		req("tips", list(object(
			req("category", str()),
			req("title", str()),
			req("content", str()),
		), 0)),
		req("comparisons", list(object(
			req("destination", str()),
			req("dailyBudget", minMax()),
			opt("notes", str()),
		), 0)),
	)
}

func relocationSchema() rule {
	return object(
		req("overview", object(
			req("population", str()),
			req("language", str()),
			req("currency", str()),
			req("timeZone", str()),
			req("generalInfo", str()),
		)),
		req("costOfLiving", object(
			req("housing", costLine()),
			req("utilities", costLine()),
			req("food", costLine()),
			req("transportation", costLine()),
			req("healthcare", costLine()),
			req("entertainment", costLine()),
			req("totalMonthly", minMax()),
		)),
		req("visaRequirements", object(
			req("touristVisa", object(
				req("required", boolean()),
				req("duration", str()),
				req("process", str()),
			)),
			req("workVisa", object(
				req("types", strList()),
				req("requirements", strList()),
				req("processingTime", str()),
			)),
			req("residency", object(
				req("requirements", strList()),
				req("processingTime", str()),
				req("cost", num()),
			)),
			req("citizenship", object(
				req("available", boolean()),
				req("requirements", strList()),
				req("timeRequired", str()),
			)),
		)),
		req("taxation", object(
			req("incomeTax", object(
				req("rate", str()),
				req("brackets", list(object(
					req("min", num()),
					maybe("max", num()),
					req("rate", num()),
				), 0)),
			)),
			req("propertyTax", object(req("rate", str()), opt("notes", str()))),
			req("vatSalesTax", object(req("rate", num()), opt("notes", str()))),
			req("socialSecurity", object(
				req("employeeRate", num()),
				req("employerRate", num()),
				opt("notes", str()),
			)),
		)),
		req("climate", object(
			req("averageTemperature", object(
				req("summer", minMax()),
				req("winter", minMax()),
			)),
			req("sunnyDaysPerYear", num()),
			req("rainyDaysPerYear", num()),
			req("humidity", str()),
			req("bestMonths", strList()),
		)),
		req("jobMarket", object(
			req("unemploymentRate", num()),
			req("averageSalary", object(
				req("min", num()),
				req("max", num()),
				req("currency", str()),
			)),
			req("inDemandSkills", strList()),
			req("majorIndustries", strList()),
			req("workCulture", object(
				req("workingHours", str()),
				req("vacationDays", num()),
				req("workLifeBalance", str()),
			)),
		)),
		req("lifestyle", object(
			req("safetyIndex", num()),
			req("healthcareQuality", str()),
			req("educationSystem", object(
				req("quality", str()),
				req("publicSchools", boolean()),
				req("internationalSchools", boolean()),
			)),
			req("transportation", object(
				req("publicTransport", str()),
				req("carOwnership", str()),
				req("walkability", str()),
			)),
			req("culture", object(
				req("socialLife", str()),
				req("expatCommunity", str()),
				req("languageBarrier", str()),
			)),
		)),
		req("banking", object(
			req("requirements", strList()),
			req("majorBanks", strList()),
			req("services", strList()),
			req("tips", strList()),
		)),
		req("comparisons", list(object(
			req("destination", str()),
			req("monthlyCost", minMax()),
			req("climate", str()),
			req("safety", str()),
			req("languageBarrier", str()),
			req("jobMarket", str()),
			opt("notes", str()),
		), 0)),
	)
}
