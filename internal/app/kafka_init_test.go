package app

import (
	"reflect"
	"testing"

	log "github.com/sirupsen/logrus"
)

func TestSplitBrokers(t *testing.T) {
	cases := []struct {
		name    string
		brokers string
		want    []string
	}{
		{name: "empty", brokers: "", want: nil},
		{name: "single", brokers: "kafka:9092", want: []string{"kafka:9092"}},
		{name: "spaces around items", brokers: " kafka1:9092 , kafka2:9092 ", want: []string{"kafka1:9092", "kafka2:9092"}},
		{name: "trailing comma", brokers: "kafka:9092,", want: []string{"kafka:9092"}},
		{name: "only separators", brokers: " , ,", want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := splitBrokers(tc.brokers)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("splitBrokers(%q) = %v, want %v", tc.brokers, got, tc.want)
			}
		})
	}
}

func TestInitEventProducer_NoBrokers(t *testing.T) {
	logger := log.New().WithField("component", "test")

	if p := initEventProducer("", logger); p != nil {
		t.Error("expected nil producer for empty broker list")
	}
	if p := initEventProducer(" , ", logger); p != nil {
		t.Error("expected nil producer for blank broker list")
	}
}
