package route

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type ScheduleRulesJSON []ScheduleRule

func (s ScheduleRulesJSON) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func (s *ScheduleRulesJSON) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte, got %T", value)
	}
	return json.Unmarshal(bytes, s)
}
