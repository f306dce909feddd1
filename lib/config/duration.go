/*
Copyright 2020 Gravitational, Inc.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gravitational/trace"
)

// Timeout provides "human" json serialization/deserialization such as "1m", "2 seconds"
// or "1 min 30 s" for time.Duration.
//
// For further information, see:
//   https://github.com/golang/go/issues/10275
//   https://stackoverflow.com/questions/48050945/how-to-unmarshal-json-into-durations
type Timeout struct {
	time.Duration
}

func (d Timeout) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Timeout) UnmarshalJSON(buf []byte) error {
	var data interface{}
	if err := json.Unmarshal(buf, &data); err != nil {
		return trace.BadParameter("cannot parse %q as duration: %v", buf, err)
	}
	var dur time.Duration
	var err error
	switch v := data.(type) {
	case string:
		dur, err = ParseDuration(v)
	case float64:
		dur = time.Duration(v * float64(time.Second))
	default:
		err = trace.BadParameter("cannot parse %q as duration", buf)
	}
	if err != nil {
		return trace.Wrap(err)
	}
	if dur < 0 {
		return trace.BadParameter("timeout must be >= 0")
	}
	d.Duration = dur
	return nil
}

// ParseDuration converts a time string into a duration.
// Accepted forms are plain numbers (seconds), Go duration strings ("1m30s")
// and verbose strings ("1 minute 30 seconds", "2 min 5 s", "100 ms").
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, trace.BadParameter("empty time string")
	}
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	normalized := strings.ToLower(strings.Replace(s, " ", "", -1))
	matches := reTimeUnit.FindAllStringSubmatch(normalized, -1)
	if len(matches) == 0 || strings.Join(flatten(matches), "") != normalized {
		return 0, trace.BadParameter("invalid time string %q", s)
	}

	var total time.Duration
	for _, m := range matches {
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, trace.BadParameter("invalid time string %q", s)
		}
		unit, ok := timeUnits[m[2]]
		if !ok {
			return 0, trace.BadParameter("unknown time unit %q in %q", m[2], s)
		}
		total += time.Duration(value * float64(unit))
	}
	if negative {
		total = -total
	}
	return total, nil
}

func flatten(matches [][]string) (parts []string) {
	for _, m := range matches {
		parts = append(parts, m[0])
	}
	return parts
}

var reTimeUnit = regexp.MustCompile(`([0-9]*\.?[0-9]+)([a-z]+)`)

var timeUnits = map[string]time.Duration{
	"d": 24 * time.Hour, "day": 24 * time.Hour, "days": 24 * time.Hour,
	"h": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"m": time.Minute, "min": time.Minute, "mins": time.Minute,
	"minute": time.Minute, "minutes": time.Minute,
	"s": time.Second, "sec": time.Second, "secs": time.Second,
	"second": time.Second, "seconds": time.Second,
	"ms": time.Millisecond, "millis": time.Millisecond,
	"millisecond": time.Millisecond, "milliseconds": time.Millisecond,
}
