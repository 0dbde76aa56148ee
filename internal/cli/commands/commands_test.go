package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contracheck/internal/cli"
	"contracheck/internal/config"
	"contracheck/internal/domain"
	"contracheck/internal/storage"
)

const credentialVar = "CONTRACHECK_TEST_CREDENTIAL"

// Exits 1 for pairs under incorrect/ and 0 otherwise, like a working detector.
const workingDetector = `case "$1" in
*incorrect*) echo "contradiction found"; exit 1 ;;
esac
echo "no contradictions"
exit 0`

type harness struct {
	t        *testing.T
	cfg      *config.Config
	root     *cobra.Command
	out      bytes.Buffer
	errOut   bytes.Buffer
	fixtures string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	color.NoColor = true
	t.Setenv(credentialVar, "")
	t.Setenv(config.EnvDetector, "")
	t.Setenv(config.EnvHistoryDSN, "")

	h := &harness{t: t, cfg: config.New()}
	h.cfg.ProjectPath = t.TempDir()
	h.fixtures = writeFixtures(t)

	h.root = &cobra.Command{Use: "contracheck", SilenceUsage: true, SilenceErrors: true}
	var flags cli.Flags
	NewCommands(h.cfg).Register(h.root, &flags, h.cfg)
	h.root.SetOut(&h.out)
	h.root.SetErr(&h.errOut)
	return h
}

func (h *harness) execute(args ...string) error {
	h.root.SetArgs(args)
	return h.root.Execute()
}

func (h *harness) run(detector string, args ...string) error {
	return h.execute(append([]string{"run", "--detector", detector, "--fixtures", h.fixtures, "--credential-env", credentialVar}, args...)...)
}

func (h *harness) lastReport() *domain.RunReport {
	h.t.Helper()
	rep, err := storage.NewJSONStorage(h.cfg).Load()
	require.NoError(h.t, err)
	return rep
}

func writeFixtures(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, class := range []string{"correct", "incorrect"} {
		dir := filepath.Join(root, class)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "calculator.js"), []byte("function add(a, b) {}\n"), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "calculator.md"), []byte("# add\n"), 0o644))
	}
	return root
}

func writeDetector(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "detector")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func TestRun_AllCasesPass(t *testing.T) {
	h := newHarness(t)

	err := h.run(writeDetector(t, workingDetector))
	require.NoError(t, err)

	out := h.out.String()
	assert.Contains(t, out, "Skipping live mode tests: "+credentialVar+" is not set")
	assert.Contains(t, out, "Overall: PASS")
	assert.NotContains(t, out, "=== live mode ===")

	rep := h.lastReport()
	assert.True(t, rep.Meta.Verdict)
	assert.Equal(t, 2, rep.Meta.TotalCases)
	assert.Equal(t, []string{"offline"}, rep.Meta.Modes)
	assert.NotEmpty(t, rep.Meta.RunID)
	require.Len(t, rep.Meta.Skipped, 1)
	assert.Equal(t, domain.ModeLive, rep.Meta.Skipped[0].Mode)
}

func TestRun_DetectorBugFailsVerdict(t *testing.T) {
	h := newHarness(t)

	err := h.run(writeDetector(t, "exit 1"))
	require.ErrorIs(t, err, domain.ErrVerdictFailed)
	assert.Contains(t, h.out.String(), "Overall: FAIL")

	rep := h.lastReport()
	assert.False(t, rep.Meta.Verdict)
	failed := rep.Failures()
	require.Len(t, failed, 1)
	assert.Equal(t, "correct/calculator", failed[0].Pair.Name)
	assert.Equal(t, domain.FailureExitCodeMismatch, failed[0].Failure)
}

func TestRun_UnexpectedExitCode(t *testing.T) {
	h := newHarness(t)

	err := h.run(writeDetector(t, `echo "boom" >&2; exit 2`))
	require.ErrorIs(t, err, domain.ErrVerdictFailed)

	for _, c := range h.lastReport().Cases {
		assert.Equal(t, domain.FailureUnexpectedExitCode, c.Failure)
		assert.Equal(t, 2, c.ActualExitCode)
		assert.Equal(t, "boom\n", c.Stderr)
	}
}

func TestRun_LiveModeWithCredential(t *testing.T) {
	h := newHarness(t)
	t.Setenv(credentialVar, "sk-test-secret")

	err := h.run(writeDetector(t, `echo "mode=$LLM_MODE"
`+workingDetector))
	require.NoError(t, err)

	rep := h.lastReport()
	require.Len(t, rep.Cases, 4)
	modes := make([]domain.ExecutionMode, 0, len(rep.Cases))
	for _, c := range rep.Cases {
		modes = append(modes, c.Mode)
	}
	assert.Equal(t, []domain.ExecutionMode{domain.ModeOffline, domain.ModeOffline, domain.ModeLive, domain.ModeLive}, modes)
	assert.Contains(t, rep.Cases[3].Stdout, "mode=openai")

	data, err := os.ReadFile(h.cfg.GetOutputPath())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "sk-test-secret")
	assert.NotContains(t, h.out.String(), "sk-test-secret")
}

func TestRun_OfflineOnly(t *testing.T) {
	h := newHarness(t)
	t.Setenv(credentialVar, "sk-test-secret")

	require.NoError(t, h.run(writeDetector(t, workingDetector), "--offline-only"))
	assert.Contains(t, h.out.String(), "Skipping live mode tests: disabled by --offline-only")
	assert.Len(t, h.lastReport().Cases, 2)
}

func TestRun_CredentialFromEnvFile(t *testing.T) {
	h := newHarness(t)
	const key = "CONTRACHECK_TEST_ENVFILE_CREDENTIAL"
	t.Cleanup(func() { os.Unsetenv(key) })
	require.NoError(t, os.Unsetenv(key))

	envFile := filepath.Join(h.cfg.ProjectPath, "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte(key+"=from-file\n"), 0o600))

	h.root.SetArgs([]string{"run",
		"--detector", writeDetector(t, workingDetector),
		"--fixtures", h.fixtures,
		"--env-file", envFile,
		"--credential-env", key,
	})
	require.NoError(t, h.root.Execute())
	assert.Equal(t, []string{"offline", "live"}, h.lastReport().Meta.Modes)
}

func TestRun_MissingDetectorIsFatal(t *testing.T) {
	h := newHarness(t)

	err := h.run(filepath.Join(t.TempDir(), "check_differences"))

	var missing *domain.MissingExecutableError
	require.True(t, errors.As(err, &missing))
	assert.Contains(t, err.Error(), config.DetectorBuildHint)
	assert.NotContains(t, h.out.String(), "Testing")

	_, statErr := os.Stat(h.cfg.GetOutputPath())
	assert.True(t, os.IsNotExist(statErr), "no report is written for a fatal run")
}

func TestRun_NonExecutableDetector(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "detector")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o644))

	err := h.run(path)

	var missing *domain.MissingExecutableError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "not executable", missing.Reason)
}

func TestRun_NoCasesIsAnError(t *testing.T) {
	h := newHarness(t)

	err := h.run(writeDetector(t, workingDetector), "--filter", "does-not-exist")
	require.ErrorIs(t, err, domain.ErrNoTestCases)
}

func TestRun_InvalidFixtureAbortsBeforeInvocation(t *testing.T) {
	h := newHarness(t)
	marker := filepath.Join(t.TempDir(), "invoked")
	detector := writeDetector(t, "touch "+marker)

	manifest := `pairs:
  - name: broken
    implementation: missing.js
    documentation: correct/calculator.md
    contradiction: false
`
	require.NoError(t, os.WriteFile(filepath.Join(h.fixtures, "fixtures.yaml"), []byte(manifest), 0o644))

	err := h.run(detector)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid fixture set")

	_, statErr := os.Stat(marker)
	assert.True(t, os.IsNotExist(statErr), "detector must not be invoked")
}

func TestRun_Timeout(t *testing.T) {
	h := newHarness(t)

	err := h.run(writeDetector(t, "exec sleep 5"), "--timeout", "200ms", "--filter", "correct/*")
	require.ErrorIs(t, err, domain.ErrVerdictFailed)

	rep := h.lastReport()
	require.Len(t, rep.Cases, 1)
	assert.Equal(t, domain.FailureTimeout, rep.Cases[0].Failure)
}

func TestRun_InterruptedRunFails(t *testing.T) {
	h := newHarness(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	h.root.SetArgs([]string{"run",
		"--detector", writeDetector(t, workingDetector),
		"--fixtures", h.fixtures,
		"--credential-env", credentialVar,
	})
	err := h.root.ExecuteContext(ctx)
	require.ErrorIs(t, err, context.Canceled)

	out := h.out.String()
	assert.Contains(t, out, "Run interrupted: only 0 of 2 scheduled cases ran")
	assert.NotContains(t, out, "Overall: PASS")

	rep := h.lastReport()
	assert.False(t, rep.Meta.Verdict)
	assert.True(t, rep.Meta.Interrupted)
	assert.Equal(t, 2, rep.Meta.ScheduledCases)
}

func TestRun_ProgressBarOnStderr(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(writeDetector(t, workingDetector), "--progress"))
	assert.Contains(t, h.errOut.String(), "Running cases")
	assert.NotContains(t, h.out.String(), "Running cases")
}

func TestRun_IdempotentVerdicts(t *testing.T) {
	detector := writeDetector(t, "case \"$1\" in *incorrect*) exit 0 ;; esac\nexit 0")

	verdicts := func() []bool {
		h := newHarness(t)
		_ = h.run(detector)
		var out []bool
		for _, c := range h.lastReport().Cases {
			out = append(out, c.Passed)
		}
		return out
	}

	first := verdicts()
	assert.Equal(t, []bool{true, false}, first)
	assert.Equal(t, first, verdicts())
}

func TestList(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.execute("list", "--fixtures", h.fixtures, "--credential-env", credentialVar))

	out := h.out.String()
	assert.Contains(t, out, "Found 2 fixture pair(s):")
	assert.Contains(t, out, "correct/calculator (consistent)")
	assert.Contains(t, out, "incorrect/calculator (contradictory)")
	assert.Contains(t, out, "2 test case(s) would run:")
	assert.Contains(t, out, "Skipping live mode tests")
}

func TestList_NoPairs(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.execute("list", "--fixtures", h.fixtures, "--credential-env", credentialVar, "--filter", "nothing*"))
	assert.Contains(t, h.out.String(), "No fixture pairs found")
}

func TestFailures_Plain(t *testing.T) {
	h := newHarness(t)
	require.ErrorIs(t, h.run(writeDetector(t, "exit 0")), domain.ErrVerdictFailed)
	h.out.Reset()

	require.NoError(t, h.execute("failures", "--plain"))

	out := h.out.String()
	assert.Contains(t, out, "1 of 2 test case(s) failed")
	assert.Contains(t, out, "incorrect/calculator")
	assert.Contains(t, out, "[exit_code_mismatch]")
}

func TestFailures_ModeFilter(t *testing.T) {
	h := newHarness(t)
	require.ErrorIs(t, h.run(writeDetector(t, "exit 0")), domain.ErrVerdictFailed)
	h.out.Reset()

	require.NoError(t, h.execute("failures", "--plain", "--mode", "live"))
	assert.Contains(t, h.out.String(), "No failed test cases")

	err := h.execute("failures", "--plain", "--mode", "cloud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown execution mode "cloud"`)
}

func TestFailures_NoPreviousRun(t *testing.T) {
	h := newHarness(t)

	err := h.execute("failures", "--plain")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no previous run found")
}

type recordingViewer struct {
	viewed *domain.RunReport
}

func (v *recordingViewer) View(rep *domain.RunReport) error {
	v.viewed = rep
	return nil
}

type memoryStorage struct {
	report *domain.RunReport
}

func (m *memoryStorage) Save(rep *domain.RunReport) error {
	m.report = rep
	return nil
}

func (m *memoryStorage) Load() (*domain.RunReport, error) {
	if m.report == nil {
		return nil, errors.New("empty")
	}
	return m.report, nil
}

func TestFailures_OpensViewer(t *testing.T) {
	rep := &domain.RunReport{Meta: domain.RunMeta{RunID: "run-1"}}
	viewer := &recordingViewer{}
	fc := NewFailuresCommand(config.New(), &memoryStorage{report: rep}, viewer)

	cmd := &cobra.Command{}
	var out strings.Builder
	cmd.SetOut(&out)

	require.NoError(t, fc.Execute(cmd, nil))
	assert.Same(t, rep, viewer.viewed)
	assert.Empty(t, out.String())
}
