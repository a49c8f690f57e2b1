package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordTipFoldsUnknownLabels(t *testing.T) {
	before := testutil.ToFloat64(tipsServed.WithLabelValues("other", SourceCLI))

	RecordTip("Rainy", SourceCLI)
	RecordTip("", SourceCLI)

	assert.Equal(t, before+2, testutil.ToFloat64(tipsServed.WithLabelValues("other", SourceCLI)))
}

func TestRecordTipKnownLabel(t *testing.T) {
	before := testutil.ToFloat64(tipsServed.WithLabelValues("rainy", SourceHTTP))

	RecordTip("rainy", SourceHTTP)

	assert.Equal(t, before+1, testutil.ToFloat64(tipsServed.WithLabelValues("rainy", SourceHTTP)))
}
