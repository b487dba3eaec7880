package leadrecord

// LeadRecord is the fixed destination schema for the intake sheet. Every
// field is optional on input and defaults when absent, the extraction result
// is never trusted to be complete.
type LeadRecord struct {
	CallerFirstName        string `json:"caller_first_name"`
	CallerLastName         string `json:"caller_last_name"`
	PhoneNumber            string `json:"phone_number"`
	ZipCode                string `json:"zip_code"`
	StandingOrLeakingWater bool   `json:"standing_or_leaking_water"`
	AffectedAreasScope     string `json:"affected_areas_scope"`
	AffectedRoomsCount     int    `json:"affected_rooms_count"`
	LeakStopped            bool   `json:"leak_stopped"`
	LeakTimeline           string `json:"leak_timeline"`
	HasInsurance           bool   `json:"has_insurance"`
	CallSummary            string `json:"call_summary"`
}

// FromMap maps an arbitrary extracted mapping onto the destination schema.
// Missing or mistyped fields take their zero default and unrecognized fields
// are dropped. This never fails, whatever the extraction produced.
func FromMap(data map[string]interface{}) LeadRecord {
	return LeadRecord{
		CallerFirstName:        asString(data["caller_first_name"]),
		CallerLastName:         asString(data["caller_last_name"]),
		PhoneNumber:            asString(data["phone_number"]),
		ZipCode:                asString(data["zip_code"]),
		StandingOrLeakingWater: asBool(data["standing_or_leaking_water"]),
		AffectedAreasScope:     asString(data["affected_areas_scope"]),
		AffectedRoomsCount:     asInt(data["affected_rooms_count"]),
		LeakStopped:            asBool(data["leak_stopped"]),
		LeakTimeline:           asString(data["leak_timeline"]),
		HasInsurance:           asBool(data["has_insurance"]),
		CallSummary:            asString(data["call_summary"]),
	}
}

// Row returns the record as one sheet row in the agreed column order.
func (rec LeadRecord) Row() []interface{} {
	return []interface{}{
		rec.CallerFirstName,
		rec.CallerLastName,
		rec.PhoneNumber,
		rec.ZipCode,
		rec.StandingOrLeakingWater,
		rec.AffectedAreasScope,
		rec.AffectedRoomsCount,
		rec.LeakStopped,
		rec.LeakTimeline,
		rec.HasInsurance,
		rec.CallSummary,
	}
}

func asString(value interface{}) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return s
}

func asBool(value interface{}) bool {
	b, ok := value.(bool)
	if !ok {
		return false
	}
	return b
}

func asInt(value interface{}) int {
	switch v := value.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		// JSON numbers decode as float64
		return int(v)
	default:
		return 0
	}
}
