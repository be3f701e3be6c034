package version

import "testing"

func TestDefaults(t *testing.T) {
	if !IsDev() {
		t.Errorf("IsDev() = false with Version %q", Version)
	}
	if got := Info(); got != "dev build" {
		t.Errorf("Info() = %q, want %q", got, "dev build")
	}
}

func TestInfo_Stamped(t *testing.T) {
	saved := Get()
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = saved.Version, saved.GitCommit, saved.BuildDate
	})

	Version, GitCommit, BuildDate = "v1.2.0", "abc1234", "2026-01-01T00:00:00Z"

	if IsDev() {
		t.Error("IsDev() = true after stamping")
	}
	want := "v1.2.0 (abc1234) built 2026-01-01T00:00:00Z"
	if got := Info(); got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
	if got := Get(); got.GitCommit != "abc1234" {
		t.Errorf("Get().GitCommit = %q, want %q", got.GitCommit, "abc1234")
	}
}
