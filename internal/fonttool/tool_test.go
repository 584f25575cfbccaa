package fonttool

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/fontbuilder/internal/config"
	"git.home.luguber.info/inful/fontbuilder/internal/manifest"
)

// fakeJava writes a shell script standing in for java. It records its
// arguments next to the requested output and writes the output file unless
// FAKE_JAVA_EXIT is non-zero.
func fakeJava(t *testing.T, body string) (java, jar string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake java relies on /bin/sh")
	}
	dir := t.TempDir()
	java = filepath.Join(dir, "java")
	require.NoError(t, os.WriteFile(java, []byte("#!/bin/sh\n"+body), 0o755))
	jar = filepath.Join(dir, "CSFontBuilder.jar")
	require.NoError(t, os.WriteFile(jar, []byte("jar"), 0o600))
	return java, jar
}

const writeOutputScript = `out=""
all="$*"
while [ $# -gt 0 ]; do
  case "$1" in
    --output) out="$2"; shift;;
  esac
  shift
done
echo "$all" > "$out.args"
echo "rendered $out"
printf 'csfont' > "$out"
`

func TestJarTool_Args(t *testing.T) {
	tool := &JarTool{Java: "java", Jar: "/tools/CSFontBuilder.jar", Headless: true, JVMArgs: []string{"-Xmx512m"}}
	job := manifest.Job{Family: "Arial", Size: 20, Output: "/tmp/fonts/ArialSmall.med.csfont"}

	require.Equal(t, []string{
		"-Djava.awt.headless=true", "-Xmx512m",
		"-jar", "/tools/CSFontBuilder.jar",
		"--fontname", "Arial",
		"--fontsize", "20",
		"--output", "/tmp/fonts/ArialSmall.med.csfont",
	}, tool.Args(job))

	tool.Headless = false
	require.Equal(t, "-Xmx512m", tool.Args(job)[0])
}

func TestNewJarTool_FromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Tool.Jar = "/opt/CSFontBuilder.jar"
	cfg.Tool.Timeout = "5s"

	tool, err := NewJarTool(cfg)
	require.NoError(t, err)
	require.Equal(t, "java", tool.Java)
	require.Equal(t, "/opt/CSFontBuilder.jar", tool.Jar)
	require.True(t, tool.Headless)
	require.Equal(t, 5*time.Second, tool.Timeout)
}

func TestJarTool_BuildFont_Success(t *testing.T) {
	java, jar := fakeJava(t, writeOutputScript)
	out := filepath.Join(t.TempDir(), "ArialSmall.low.csfont")
	tool := &JarTool{Java: java, Jar: jar, Headless: true}

	res, err := tool.BuildFont(context.Background(), manifest.Job{Family: "Arial", Size: 10, Output: out})
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode)
	require.Equal(t, "rendered "+out, res.Stdout)
	require.FileExists(t, out)

	args, err := os.ReadFile(out + ".args")
	require.NoError(t, err)
	require.Equal(t, "-Djava.awt.headless=true -jar "+jar+" --fontname Arial --fontsize 10 --output "+out+"\n", string(args))
}

func TestJarTool_BuildFont_NonZeroExit(t *testing.T) {
	java, jar := fakeJava(t, "echo 'font Arial not installed' >&2\nexit 3\n")
	tool := &JarTool{Java: java, Jar: jar, Headless: true}

	res, err := tool.BuildFont(context.Background(), manifest.Job{Family: "Arial", Size: 10, Output: filepath.Join(t.TempDir(), "a.csfont")})
	require.ErrorIs(t, err, ErrToolExecutionFailed)
	require.Contains(t, err.Error(), "font Arial not installed")
	require.Equal(t, 3, res.ExitCode)
}

func TestJarTool_BuildFont_MissingJava(t *testing.T) {
	tool := &JarTool{Java: filepath.Join(t.TempDir(), "no-java"), Jar: "CSFontBuilder.jar"}

	res, err := tool.BuildFont(context.Background(), manifest.Job{Family: "Arial", Size: 10, Output: "a.csfont"})
	require.ErrorIs(t, err, ErrToolNotFound)
	require.Equal(t, -1, res.ExitCode)
}

func TestJarTool_BuildFont_MissingJar(t *testing.T) {
	java, _ := fakeJava(t, writeOutputScript)
	tool := &JarTool{Java: java, Jar: filepath.Join(t.TempDir(), "missing.jar")}

	_, err := tool.BuildFont(context.Background(), manifest.Job{Family: "Arial", Size: 10, Output: "a.csfont"})
	require.ErrorIs(t, err, ErrToolNotFound)
}

func TestJarTool_BuildFont_Timeout(t *testing.T) {
	java, jar := fakeJava(t, "exec sleep 5\n")
	tool := &JarTool{Java: java, Jar: jar, Timeout: 100 * time.Millisecond}

	start := time.Now()
	res, err := tool.BuildFont(context.Background(), manifest.Job{Family: "Arial", Size: 10, Output: "a.csfont"})
	require.ErrorIs(t, err, ErrToolTimeout)
	require.Equal(t, -1, res.ExitCode)
	require.Less(t, time.Since(start), 4*time.Second)
}

func TestJarTool_BuildFont_Canceled(t *testing.T) {
	java, jar := fakeJava(t, writeOutputScript)
	tool := &JarTool{Java: java, Jar: jar}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tool.BuildFont(ctx, manifest.Job{Family: "Arial", Size: 10, Output: filepath.Join(t.TempDir(), "a.csfont")})
	require.True(t, errors.Is(err, context.Canceled))
}

func TestFunc_AdaptsToTool(t *testing.T) {
	var got manifest.Job
	var tool Tool = Func(func(_ context.Context, job manifest.Job) (*Result, error) {
		got = job
		return &Result{ExitCode: 0}, nil
	})
	res, err := tool.BuildFont(context.Background(), manifest.Job{Family: "Arial", Size: 16})
	require.NoError(t, err)
	require.Equal(t, 0, res.ExitCode)
	require.Equal(t, 16, got.Size)
}

func TestTail(t *testing.T) {
	long := make([]byte, maxCapturedOutput+10)
	for i := range long {
		long[i] = 'x'
	}
	got := tail(string(long))
	require.Len(t, got, maxCapturedOutput+3)
	require.Equal(t, "ok", tail("  ok\n"))
}
