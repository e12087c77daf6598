package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"co2-predictor-service/internal/adapters/secondary/filestore"
)

const referenceCSV = `Car,Model,Volume,Weight,CO2
Toyoty,Aygo,1000,790,99
Mitsubishi,Space Star,1600,1160,95
Skoda,Citigo,1600,929,95
Fiat,500,1600,865,90
Mini,Cooper,1600,1140,105
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTrainPredictInspect(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.csv")
	modelPath := filepath.Join(dir, "co2_model.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(referenceCSV), 0o644))

	out, err := run(t, "train", "--data", dataPath, "--out", modelPath)
	require.NoError(t, err, out)
	assert.Contains(t, out, "Model saved to "+modelPath)
	assert.Contains(t, out, "coefficient_weight")

	artifact, err := filestore.ReadFile(modelPath)
	require.NoError(t, err)
	assert.Equal(t, 5, artifact.Training.Rows)

	out, err = run(t, "predict", "--model", modelPath, "--weight", "1300", "--volume", "1300")
	require.NoError(t, err, out)
	assert.Equal(t, "Predicted CO2: 109.24 g/km (MEDIUM)\n", out)

	out, err = run(t, "inspect", "--model", modelPath, "--markdown")
	require.NoError(t, err, out)
	assert.Contains(t, out, "| intercept |")
	assert.Contains(t, out, artifact.ID.String())
}

func TestTrain_YAMLOutput(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.csv")
	modelPath := filepath.Join(dir, "model.yaml")
	require.NoError(t, os.WriteFile(dataPath, []byte(referenceCSV), 0o644))

	_, err := run(t, "train", "--data", dataPath, "--out", modelPath)
	require.NoError(t, err)

	artifact, err := filestore.ReadFile(modelPath)
	require.NoError(t, err)
	assert.InDelta(t, 91.74109402276991, artifact.Intercept, 1e-9)
}

func TestTrain_Errors(t *testing.T) {
	dir := t.TempDir()
	short := filepath.Join(dir, "short.csv")
	require.NoError(t, os.WriteFile(short, []byte("weight,volume,co2\n1000,1200,100\n1500,1600,120\n"), 0o644))

	_, err := run(t, "train", "--data", filepath.Join(dir, "missing.csv"), "--out", filepath.Join(dir, "m.json"))
	assert.Error(t, err)

	_, err = run(t, "train", "--data", short, "--out", filepath.Join(dir, "m.json"))
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "m.json"))
}

func TestPredict_RequiresInputs(t *testing.T) {
	_, err := run(t, "predict", "--model", "co2_model.json", "--weight", "1300")
	assert.Error(t, err)
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data.csv" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(referenceCSV))
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "data.csv")
	out, err := run(t, "fetch", "--url", srv.URL+"/data.csv", "--out", dst)
	require.NoError(t, err, out)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, referenceCSV, string(data))

	_, err = run(t, "fetch", "--url", srv.URL+"/missing.csv", "--out", dst)
	assert.Error(t, err)
}
