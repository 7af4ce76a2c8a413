package router

import "reflect"

// collectionKeys are the named collections the providers wrap payloads
// in. A response exposing one of these with no entries carries no usable
// records even though it is structurally successful.
var collectionKeys = []string{
	"events", "teams", "players", "leagues", "countries",
	"table", "standings", "fixtures", "result", "response",
	"odds", "highlights",
}

// IsEmpty is the fallback-worthiness predicate: it reports whether a
// structurally-successful payload carries no usable data. Providers
// commonly signal "nothing matched" as success with an empty body, so
// the router must not report success with zero records when a fallback
// might have some.
func IsEmpty(data interface{}) bool {
	if data == nil {
		return true
	}

	switch v := data.(type) {
	case []interface{}:
		return len(v) == 0
	case map[string]interface{}:
		return mapIsEmpty(v)
	}

	// Typed slices and maps from fakes or shaped payloads.
	rv := reflect.ValueOf(data)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Len() == 0
	case reflect.Ptr:
		if rv.IsNil() {
			return true
		}
	}
	return false
}

func mapIsEmpty(m map[string]interface{}) bool {
	if len(m) == 0 {
		return true
	}

	// AllSports-style envelope: success==1 with the result key missing
	// or empty means the call "worked" but matched nothing.
	if _, hasSuccess := m["success"]; hasSuccess {
		result, hasResult := m["result"]
		if !hasResult {
			return true
		}
		return IsEmpty(result)
	}

	// Named-collection shapes: empty iff every collection key present is
	// itself empty (TheSportsDB uses null, API-Football uses []).
	sawCollection := false
	for _, key := range collectionKeys {
		value, present := m[key]
		if !present {
			continue
		}
		sawCollection = true
		if !IsEmpty(value) {
			return false
		}
	}
	return sawCollection
}
