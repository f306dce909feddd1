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
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type TestMessage struct {
	Timeout Timeout `json:"timeout"`
}

func TestJsonDeserialization(t *testing.T) {
	data := []byte(`{"timeout":"30s"}`)
	var msg TestMessage
	err := json.Unmarshal(data, &msg)
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, msg.Timeout.Duration)
}

func TestNumericDeserialization(t *testing.T) {
	data := []byte(`{"timeout":1.5}`)
	var msg TestMessage
	err := json.Unmarshal(data, &msg)
	require.NoError(t, err)
	require.Equal(t, 1500*time.Millisecond, msg.Timeout.Duration)
}

func TestInvalidDeserialization(t *testing.T) {
	for _, data := range []string{`{"timeout":true}`, `{"timeout":"soon"}`, `{"timeout":"-5s"}`} {
		var msg TestMessage
		err := json.Unmarshal([]byte(data), &msg)
		if err == nil {
			t.Errorf("expected an error when deserializing %s", data)
		}
	}
}

func TestDurationSerialization(t *testing.T) {
	delta, err := time.ParseDuration("24h")
	require.NoError(t, err)
	msg := TestMessage{Timeout{delta}}
	data, err := json.Marshal(&msg)
	require.NoError(t, err)
	expected := []byte(`{"timeout":"24h0m0s"}`)
	if !bytes.Equal(data, expected) {
		t.Errorf("serializing 24h, expected %q, got %q", expected, data)
	}
}

func TestParseDuration(t *testing.T) {
	var testCases = []struct {
		in       string
		expected time.Duration
	}{
		{in: "5", expected: 5 * time.Second},
		{in: "0.5", expected: 500 * time.Millisecond},
		{in: "1m30s", expected: 90 * time.Second},
		{in: "2 seconds", expected: 2 * time.Second},
		{in: "1 minute 30 seconds", expected: 90 * time.Second},
		{in: "1 min 5 s", expected: 65 * time.Second},
		{in: "100 milliseconds", expected: 100 * time.Millisecond},
		{in: "1 hour", expected: time.Hour},
		{in: "- 2 sec", expected: -2 * time.Second},
	}
	for _, tc := range testCases {
		d, err := ParseDuration(tc.in)
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.expected, d, tc.in)
	}
}

func TestParseDurationRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "abc", "5 fortnights", "1 minute and a bit"} {
		_, err := ParseDuration(in)
		require.Error(t, err, in)
	}
}
