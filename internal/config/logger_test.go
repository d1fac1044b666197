package config

import "testing"

func TestInitLoggerReturnsOneInstance(t *testing.T) {
	if InitLogger() != InitLogger() {
		t.Error("InitLogger built a second logger")
	}
	if log != InitLogger() {
		t.Error("package logger differs from the shared instance")
	}
}
