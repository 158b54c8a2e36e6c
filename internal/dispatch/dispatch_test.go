package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	wm "writeoff_monitor"

	"github.com/segmentio/kafka-go"
)

var samplePayload = []wm.UnitEventSet{
	{UnitID: 7, UnitName: "Kitchen", Events: []string{"EXPIRE_AT_5_MINUTES"}},
}

func TestHTTPSink_PostsJSONPayload(t *testing.T) {
	t.Parallel()

	var (
		gotBody   []byte
		gotCT     string
		gotMethod string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotCT = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	if err := NewHTTPSink(srv.URL, time.Second).Send(context.Background(), samplePayload); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotMethod != http.MethodPost || gotCT != "application/json" {
		t.Fatalf("unexpected request: %s %s", gotMethod, gotCT)
	}
	want := `[{"unit_id":7,"unit_name":"Kitchen","events":["EXPIRE_AT_5_MINUTES"]}]`
	if string(gotBody) != want {
		t.Fatalf("body = %s, want %s", gotBody, want)
	}
}

func TestHTTPSink_Non2xxIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad unit", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewHTTPSink(srv.URL, 0).Send(context.Background(), samplePayload)
	if err == nil || !strings.Contains(err.Error(), "502") || !strings.Contains(err.Error(), "bad unit") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestHTTPSink_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	if err := NewHTTPSink(url, time.Second).Send(context.Background(), samplePayload); err == nil {
		t.Fatalf("expected transport error")
	}
}

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaSink_PublishesOneMessage(t *testing.T) {
	t.Parallel()

	w := &fakeWriter{}
	s := &KafkaSink{topic: "writeoffs", writer: w}
	if err := s.Send(context.Background(), samplePayload); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if len(w.msgs) != 1 || string(w.msgs[0].Key) != kafkaMessageKey {
		t.Fatalf("unexpected messages: %+v", w.msgs)
	}
	var decoded []wm.UnitEventSet
	if err := json.Unmarshal(w.msgs[0].Value, &decoded); err != nil || decoded[0].UnitName != "Kitchen" {
		t.Fatalf("unexpected value %s (%v)", w.msgs[0].Value, err)
	}
	if err := s.Close(); err != nil || !w.closed {
		t.Fatalf("Close did not reach writer")
	}
}

func TestKafkaSink_WriteError(t *testing.T) {
	t.Parallel()

	s := &KafkaSink{topic: "writeoffs", writer: &fakeWriter{err: errors.New("no leader")}}
	err := s.Send(context.Background(), samplePayload)
	if err == nil || !strings.Contains(err.Error(), "no leader") {
		t.Fatalf("expected publish error, got %v", err)
	}
}

func TestNewKafkaSink_Validation(t *testing.T) {
	t.Parallel()

	if _, err := NewKafkaSink(nil, "t", 0); !errors.Is(err, errNoBrokers) {
		t.Fatalf("expected errNoBrokers, got %v", err)
	}
	if _, err := NewKafkaSink([]string{"localhost:9092"}, " ", 0); err == nil {
		t.Fatalf("expected empty topic error")
	}
	s, err := NewKafkaSink([]string{"localhost:9092"}, "writeoffs", 0)
	if err != nil {
		t.Fatalf("NewKafkaSink: %v", err)
	}
	_ = s.Close()
}
