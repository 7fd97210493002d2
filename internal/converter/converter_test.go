package converter

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Nalian79/ssim-pprint/internal/config"
	"github.com/Nalian79/ssim-pprint/internal/ssimparser"
	"github.com/Nalian79/ssim-pprint/internal/types"
	"github.com/Nalian79/ssim-pprint/pkg/utils"
)

func sampleSSIM() string {
	lines := []string{
		ssimparser.Encode(types.CarrierInfoRecord{TimeMode: "U", CarrierCode: "BA", ValidityStart: "01JAN24", ValidityEnd: "31DEC24"}),
		ssimparser.Encode(types.LegScheduleRecord{
			CarrierCode: "BA", FlightNumber: "0100", IVI: "01", LegSequence: "01",
			PeriodStart: "01JAN24", PeriodEnd: "31MAR24", DaysOfOperation: "1234567",
			DepartureStation: "LHR", PassengerSTD: "0900", ArrivalStation: "JFK", PassengerSTA: "1200",
		}),
		ssimparser.Encode(types.LegDataElementRecord{CarrierCode: "BA", FlightNumber: "0100", IVI: "01", LegSequence: "01", DEI: "050", DEIData: "X"}),
		ssimparser.Encode(types.LegScheduleRecord{
			CarrierCode: "AA", FlightNumber: "0001", IVI: "01", LegSequence: "01",
			PeriodStart: "01JAN24", PeriodEnd: "31MAR24", DaysOfOperation: "1234567",
			DepartureStation: "DFW", ArrivalStation: "ORD",
		}),
	}
	return strings.Join(lines, "\n") + "\n"
}

func testConfig(t *testing.T, formats ...string) *config.MainConfig {
	t.Helper()
	root := t.TempDir()
	cfg := config.DefaultMainConfig()
	cfg.OutputDir = filepath.Join(root, "output")
	cfg.WorkDir = filepath.Join(root, "work")
	cfg.OutputNameFormat = "{carrier}{flight}_{uuid}"
	if len(formats) > 0 {
		cfg.ReportFormats = formats
	}
	return cfg
}

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schedule.ssim")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunWritesReports(t *testing.T) {
	cfg := testConfig(t, config.FormatText, config.FormatXML, config.FormatXLSX)
	conv := New(Request{SSIMPath: writeInput(t, sampleSSIM()), Carrier: "BA"}, cfg, zap.NewNop())

	result := conv.Run()
	require.NoError(t, result.Error)
	assert.True(t, result.Success)
	assert.Equal(t, conv.RunID(), result.RunID)

	assert.Equal(t, 4, result.Stats.LinesRead)
	assert.Equal(t, 1, result.Stats.LinesSkipped)
	assert.Equal(t, 3, result.Stats.RecordsDecoded)
	assert.Equal(t, 1, result.Stats.Aggregate.Flights)
	assert.Equal(t, 1, result.Stats.Aggregate.DataElements)
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.ErrorLog)

	require.Len(t, result.OutputFiles, 2)
	assert.Equal(t, filepath.Join(cfg.OutputDir, "BA_"+conv.RunID()+".xml"), result.OutputFiles[0])
	assert.FileExists(t, result.OutputFiles[1])

	doc, err := os.ReadFile(result.OutputFiles[0])
	require.NoError(t, err)
	assert.Contains(t, string(doc), `runId="`+conv.RunID()+`"`)
	assert.Contains(t, string(doc), `<flight name="BA0100"`)
	assert.NotContains(t, string(doc), "AA0001")
}

func TestRunTextOnlyWritesNoFiles(t *testing.T) {
	cfg := testConfig(t)
	result := New(Request{SSIMPath: writeInput(t, sampleSSIM()), Carrier: "BA"}, cfg, nil).Run()

	require.NoError(t, result.Error)
	assert.Empty(t, result.OutputFiles)
	assert.NoDirExists(t, cfg.OutputDir)
}

func TestRunGzipInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.ssim.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	w := gzip.NewWriter(f)
	_, err = w.Write([]byte(sampleSSIM()))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	cfg := testConfig(t)
	result := New(Request{SSIMPath: path, Carrier: "AA"}, cfg, zap.NewNop()).Run()

	require.NoError(t, result.Error)
	assert.Equal(t, utils.CompressionGzip, result.Compression)
	assert.Equal(t, filepath.Join(cfg.WorkDir, "schedule.ssim"), result.ParsedPath)
	_, ok := result.Aggregate.Find("AA", "1")
	assert.True(t, ok)
}

func TestRunFlightFilter(t *testing.T) {
	cfg := testConfig(t)

	result := New(Request{SSIMPath: writeInput(t, sampleSSIM()), Carrier: "BA", Flight: "100"}, cfg, nil).Run()
	require.NoError(t, result.Error)
	assert.Equal(t, 1, result.Stats.Aggregate.Flights)

	result = New(Request{SSIMPath: writeInput(t, sampleSSIM()), Carrier: "BA", Flight: "200"}, cfg, nil).Run()
	assert.ErrorIs(t, result.Error, ErrFlightNotFound)
	assert.False(t, result.Success)
}

func TestRunUnknownCarrier(t *testing.T) {
	result := New(Request{SSIMPath: writeInput(t, sampleSSIM()), Carrier: "ZZ"}, testConfig(t), nil).Run()
	assert.ErrorIs(t, result.Error, ErrNoMatchingRecords)
}

func TestRunWritesErrorLog(t *testing.T) {
	input := sampleSSIM() + "3 BA 0100 short\n"
	cfg := testConfig(t)

	result := New(Request{SSIMPath: writeInput(t, input), Carrier: "BA"}, cfg, nil).Run()
	require.NoError(t, result.Error)
	assert.Equal(t, 1, result.Stats.LineErrors)
	require.NotEmpty(t, result.ErrorLog)

	data, err := os.ReadFile(result.ErrorLog)
	require.NoError(t, err)
	assert.Contains(t, string(data), "line error")
	assert.Contains(t, string(data), "Line:       4")
}

func TestRunFailFast(t *testing.T) {
	input := "3 BA 0100 short\n" + sampleSSIM()
	cfg := testConfig(t)
	cfg.FailFast = true

	result := New(Request{SSIMPath: writeInput(t, input), Carrier: "BA"}, cfg, nil).Run()
	assert.ErrorIs(t, result.Error, types.ErrMalformedRecord)
	assert.Nil(t, result.Aggregate)
	require.NotEmpty(t, result.ErrorLog)

	data, err := os.ReadFile(result.ErrorLog)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fatal")
	assert.Contains(t, string(data), "Line:       0")
}

func TestRunPrecedenceViolation(t *testing.T) {
	input := ssimparser.Encode(types.LegDataElementRecord{CarrierCode: "BA", FlightNumber: "0999", IVI: "01", LegSequence: "01", DEI: "050", DEIData: "X"}) + "\n"

	result := New(Request{SSIMPath: writeInput(t, input), Carrier: "BA"}, testConfig(t), nil).Run()
	assert.ErrorIs(t, result.Error, types.ErrPrecedenceViolation)
}

func TestRunDataElementBeforeSchedule(t *testing.T) {
	input := strings.Join([]string{
		ssimparser.Encode(types.LegDataElementRecord{CarrierCode: "BA", FlightNumber: "0100", IVI: "01", LegSequence: "01", DEI: "050", DEIData: "X"}),
		ssimparser.Encode(types.LegScheduleRecord{
			CarrierCode: "BA", FlightNumber: "0100", IVI: "01", LegSequence: "01",
			PeriodStart: "01JAN24", PeriodEnd: "31MAR24", DaysOfOperation: "1234567",
			DepartureStation: "LHR", ArrivalStation: "JFK",
		}),
	}, "\n") + "\n"

	result := New(Request{SSIMPath: writeInput(t, input), Carrier: "BA"}, testConfig(t), nil).Run()
	assert.ErrorIs(t, result.Error, types.ErrPrecedenceViolation)
	assert.Nil(t, result.Aggregate)
}

func TestRunMissingInput(t *testing.T) {
	result := New(Request{SSIMPath: filepath.Join(t.TempDir(), "missing.ssim")}, testConfig(t), nil).Run()
	assert.Error(t, result.Error)
	assert.Empty(t, result.ParsedPath)
}
