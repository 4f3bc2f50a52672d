package verify_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puzzle-framework/kropki/cmd/verify"
	"github.com/puzzle-framework/kropki/internal/testgrid"
	"github.com/puzzle-framework/kropki/pkg/kropki/puzzle"
)

// batchLayout writes data/Input1.txt and output/basic/Output1.txt, the
// layout the batch verifier scans.
func batchLayout(t *testing.T, solution string) (dataDir, outputDir string) {
	t.Helper()
	dir := t.TempDir()
	dataDir = filepath.Join(dir, "data")
	outputDir = filepath.Join(dir, "output")
	require.NoError(t, os.MkdirAll(dataDir, 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(outputDir, "basic"), 0755))

	require.NoError(t, os.WriteFile(
		filepath.Join(dataDir, "Input1.txt"),
		[]byte(testgrid.Text(testgrid.TransversalBlanks...)), 0644))
	require.NoError(t, os.WriteFile(
		filepath.Join(outputDir, "basic", "Output1.txt"),
		[]byte(solution), 0644))
	return dataDir, outputDir
}

func solvedText(t *testing.T) string {
	t.Helper()
	text, err := puzzle.Format(testgrid.Board())
	require.NoError(t, err)
	return text
}

func TestBatchAcceptsValidSolutions(t *testing.T) {
	dataDir, outputDir := batchLayout(t, solvedText(t))

	cmd := verify.NewVerifyCommand()
	cmd.SetArgs([]string{"--data", dataDir, "--output", outputDir})
	assert.NoError(t, cmd.Execute())
}

func TestBatchFailsOnABadSolution(t *testing.T) {
	broken := strings.Replace(solvedText(t), "5 3 4", "3 5 4", 1)
	dataDir, outputDir := batchLayout(t, broken)

	cmd := verify.NewVerifyCommand()
	cmd.SetArgs([]string{"--data", dataDir, "--output", outputDir})
	assert.Error(t, cmd.Execute())
}

func TestBatchSkipsSolutionsWithoutAPuzzle(t *testing.T) {
	dataDir, outputDir := batchLayout(t, solvedText(t))
	require.NoError(t, os.WriteFile(
		filepath.Join(outputDir, "basic", "Output9.txt"),
		[]byte(solvedText(t)), 0644))

	cmd := verify.NewVerifyCommand()
	cmd.SetArgs([]string{"--data", dataDir, "--output", outputDir})
	assert.NoError(t, cmd.Execute())
}

func TestPairMode(t *testing.T) {
	dataDir, outputDir := batchLayout(t, solvedText(t))
	puzzlePath := filepath.Join(dataDir, "Input1.txt")
	solutionPath := filepath.Join(outputDir, "basic", "Output1.txt")

	cmd := verify.NewVerifyCommand()
	cmd.SetArgs([]string{puzzlePath, solutionPath})
	assert.NoError(t, cmd.Execute())
}

func TestPairModeFailsOnABadSolution(t *testing.T) {
	dataDir, outputDir := batchLayout(t, strings.Replace(solvedText(t), "5 3 4", "3 5 4", 1))

	cmd := verify.NewVerifyCommand()
	cmd.SetArgs([]string{
		filepath.Join(dataDir, "Input1.txt"),
		filepath.Join(outputDir, "basic", "Output1.txt"),
	})
	assert.Error(t, cmd.Execute())
}

func TestArgsContract(t *testing.T) {
	cmd := verify.NewVerifyCommand()
	cmd.SetArgs([]string{"just-one-file.txt"})
	assert.Error(t, cmd.Execute())
}
