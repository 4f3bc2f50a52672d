package e2e

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/puzzle-framework/kropki/cmd/root"
	"github.com/puzzle-framework/kropki/internal/testgrid"
	"github.com/puzzle-framework/kropki/pkg/kropki"
	"github.com/puzzle-framework/kropki/pkg/kropki/puzzle"
)

func TestE2E(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "E2E Suite")
}

func Logf(f string, v ...interface{}) {
	if !strings.HasSuffix(f, "\n") {
		f += "\n"
	}
	fmt.Fprintf(GinkgoWriter, f, v...)
}

// run executes the CLI the way a user would, one fresh command tree
// per invocation.
func run(args ...string) error {
	cmd := root.NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(GinkgoWriter)
	cmd.SetErr(GinkgoWriter)
	return cmd.Execute()
}

var _ = Describe("Basic solve and verify pipeline", func() {
	When("a data directory holds puzzle files", func() {
		var (
			dataDir   string
			outputDir string
		)
		BeforeEach(func() {
			base := GinkgoT().TempDir()
			dataDir = filepath.Join(base, "data")
			outputDir = filepath.Join(base, "output")
			Expect(os.Mkdir(dataDir, 0755)).To(Succeed())

			By("writing the testing puzzle files")
			var topRows []kropki.Position
			for r := 0; r < 3; r++ {
				for c := 0; c < 9; c++ {
					topRows = append(topRows, kropki.Position{Row: r, Col: c})
				}
			}
			err := os.WriteFile(filepath.Join(dataDir, "Input1.txt"),
				[]byte(testgrid.Text(testgrid.TransversalBlanks...)), 0644)
			Expect(err).To(BeNil())
			err = os.WriteFile(filepath.Join(dataDir, "Input2.txt"),
				[]byte(testgrid.Text(topRows...)), 0644)
			Expect(err).To(BeNil())
		})

		It("solves every puzzle in both configurations and verifies the solutions", func() {
			By("running the batch solver in both configurations")
			Expect(run("solve", "--data", dataDir, "--output", outputDir)).To(Succeed())
			Expect(run("solve", "--forward-checking", "--heuristic", "mrv",
				"--data", dataDir, "--output", outputDir)).To(Succeed())

			By("reading back the solution files")
			want, err := puzzle.Format(testgrid.Board())
			Expect(err).To(BeNil())
			for _, mode := range []string{"basic", "forward_checking"} {
				for _, name := range []string{"Output1.txt", "Output2.txt"} {
					path := filepath.Join(outputDir, mode, name)
					Logf("checking %s", path)
					raw, err := os.ReadFile(path)
					Expect(err).To(BeNil())
					Expect(string(raw)).To(Equal(want))
				}
			}

			By("verifying the whole batch")
			Expect(run("verify", "--data", dataDir, "--output", outputDir)).To(Succeed())

			By("cross checking one puzzle against the CNF encoding")
			Expect(run("check", filepath.Join(dataDir, "Input1.txt"))).To(Succeed())
		})

		It("rejects a doctored solution", func() {
			Expect(run("solve", "--data", dataDir, "--output", outputDir)).To(Succeed())

			doctored := filepath.Join(outputDir, "basic", "Output1.txt")
			raw, err := os.ReadFile(doctored)
			Expect(err).To(BeNil())
			text := strings.Replace(string(raw), "5 3 4", "3 5 4", 1)
			Expect(os.WriteFile(doctored, []byte(text), 0644)).To(Succeed())

			err = run("verify", "--data", dataDir, "--output", outputDir)
			Expect(err).To(MatchError(ContainSubstring("solutions failed verification")))
		})
	})
})
