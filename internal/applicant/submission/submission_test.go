package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"insurtech/internal/applicant/models"
	id "insurtech/pkg/domain"
	"insurtech/pkg/platform/circuit"
	"insurtech/pkg/requestcontext"
)

func record() models.FieldSet {
	return models.FieldSet{
		FullNameEnglish:  "Sita Sharma",
		Gender:           models.GenderFemale,
		DateOfBirthAD:    "2001-05-10",
		DateOfBirthBS:    "2058-01-25",
		CitizenshipFront: &models.Attachment{Name: "f.png", MIMEType: models.MIMETypePNG, Size: 3, Data: []byte("abc")},
		CitizenshipBack:  &models.Attachment{Name: "b.pdf", MIMEType: models.MIMETypePDF, Size: 2, Data: []byte{0xff, 0x00}},
	}
}

func TestBuildEncodesAttachments(t *testing.T) {
	now := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.FixedZone("NPT", 5*3600+45*60))
	appID := id.NewApplicationID()

	bundle, err := NewBuilder(WithBuilderClock(func() time.Time { return now })).Build(context.Background(), appID, record())
	require.NoError(t, err)

	assert.Equal(t, appID.String(), bundle.ApplicationID)
	assert.NotEmpty(t, bundle.SubmissionID)
	assert.Equal(t, now.UTC(), bundle.SubmittedAt)
	assert.Equal(t, "data:image/png;base64,YWJj", bundle.CitizenshipFront)
	assert.Equal(t, "data:application/pdf;base64,/wA=", bundle.CitizenshipBack)
	assert.Equal(t, "Sita Sharma", bundle.Fields.FullNameEnglish)
}

func TestBuildUsesRequestTime(t *testing.T) {
	at := time.Date(2026, time.October, 14, 3, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), at)

	bundle, err := NewBuilder().Build(ctx, id.NewApplicationID(), models.FieldSet{})
	require.NoError(t, err)
	assert.Equal(t, at, bundle.SubmittedAt)
}

func TestBuildWithoutAttachments(t *testing.T) {
	bundle, err := NewBuilder().Build(context.Background(), id.NewApplicationID(), models.FieldSet{FullNameEnglish: "A"})
	require.NoError(t, err)
	assert.Empty(t, bundle.CitizenshipFront)
	assert.Empty(t, bundle.CitizenshipBack)

	raw, err := json.Marshal(bundle)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "citizenshipFront")
}

func TestBuildHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewBuilder().Build(ctx, id.NewApplicationID(), record())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDataURL(t *testing.T) {
	assert.Empty(t, DataURL(nil))
	assert.Equal(t, "data:image/jpeg;base64,", DataURL(&models.Attachment{MIMEType: models.MIMETypeJPEG}))
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	bundle := Bundle{SubmissionID: "s-1", ApplicationID: "a-1", Fields: record(), CitizenshipFront: "data:x"}

	require.NoError(t, NewLogSink(logger).Submit(context.Background(), bundle))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "form submitted successfully", entry["msg"])
	assert.Equal(t, "a-1", entry["application_id"])
	assert.Equal(t, "Sita Sharma", entry["full_name_english"])
	assert.EqualValues(t, len("data:x"), entry["citizenship_front_bytes"])
	assert.NotContains(t, buf.String(), "YWJj")
}

type fakeProducer struct {
	records []*kgo.Record
	err     error
	closed  bool
	ctxErr  error
}

func (p *fakeProducer) ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	p.records = append(p.records, rs...)
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		p.ctxErr = errors.New("missing deadline")
	}
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		results = append(results, kgo.ProduceResult{Record: r, Err: p.err})
	}
	return results
}

func (p *fakeProducer) Close() { p.closed = true }

func TestKafkaSinkProducesJSONRecord(t *testing.T) {
	p := &fakeProducer{}
	sink := newKafkaSink(p, "applicant.submissions", WithProduceTimeout(time.Second))
	bundle := Bundle{SubmissionID: "s-1", ApplicationID: "a-1", Fields: models.FieldSet{FullNameEnglish: "Ram"}}

	require.NoError(t, sink.Submit(context.Background(), bundle))
	require.Len(t, p.records, 1)
	require.NoError(t, p.ctxErr)

	rec := p.records[0]
	assert.Equal(t, "applicant.submissions", rec.Topic)
	assert.Equal(t, []byte("a-1"), rec.Key)
	assert.Equal(t, kgo.RecordHeader{Key: "submission_id", Value: []byte("s-1")}, rec.Headers[0])

	var decoded Bundle
	require.NoError(t, json.Unmarshal(rec.Value, &decoded))
	assert.Equal(t, "Ram", decoded.Fields.FullNameEnglish)

	sink.Close()
	assert.True(t, p.closed)
}

func TestKafkaSinkReportsProduceError(t *testing.T) {
	p := &fakeProducer{err: errors.New("broker down")}
	err := newKafkaSink(p, "t").Submit(context.Background(), Bundle{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestNewKafkaSinkValidatesConfig(t *testing.T) {
	_, err := NewKafkaSink(nil, "t")
	assert.Error(t, err)
	_, err = NewKafkaSink([]string{"localhost:9092"}, "")
	assert.Error(t, err)

	var nilSink *KafkaSink
	assert.NotPanics(t, nilSink.Close)
}

type recordingSink struct {
	calls int
	err   error
}

func (s *recordingSink) Submit(context.Context, Bundle) error {
	s.calls++
	return s.err
}

func TestFallbackSink(t *testing.T) {
	primary := &recordingSink{err: errors.New("unavailable")}
	fallback := &recordingSink{}
	sink := NewFallbackSink(primary, fallback, circuit.New("kafka", circuit.WithFailureThreshold(2)), slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	assert.Error(t, sink.Submit(context.Background(), Bundle{}), "closed circuit surfaces the primary error")
	assert.NoError(t, sink.Submit(context.Background(), Bundle{}), "opening failure is served by the fallback")
	assert.NoError(t, sink.Submit(context.Background(), Bundle{}))
	assert.Equal(t, 3, primary.calls)
	assert.Equal(t, 2, fallback.calls)

	primary.err = nil
	assert.NoError(t, sink.Submit(context.Background(), Bundle{}))
	assert.Equal(t, 2, fallback.calls)
}
