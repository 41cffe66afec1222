package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const catalogJSON = `[
  {"id": "mat1", "subject": "Matematica", "teacher": "Rossi", "classroom": "A1",
   "day_of_week": 1, "start_time": "08:00", "end_time": "09:00", "color": "blue"},
  {"subject": "Italiano", "day_of_week": 1, "start_time": "09:00", "end_time": "10:00"}
]`

func TestStore_Reload(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "catalog.json", catalogJSON)

	store := NewStore(catalogPath, "", 0)

	if store.Loaded() {
		t.Error("store should not report loaded before the first reload")
	}

	if err := store.Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}

	if !store.Loaded() {
		t.Error("store should report loaded after reload")
	}

	lessons, settings := store.Snapshot()
	if len(lessons) != 2 {
		t.Fatalf("loaded %d lessons, want 2", len(lessons))
	}
	if lessons[0].ID != "mat1" {
		t.Errorf("existing ID = %q, want mat1", lessons[0].ID)
	}
	if lessons[1].ID == "" {
		t.Error("lesson without an ID should get one assigned")
	}
	if settings == nil {
		t.Fatal("settings should default when no settings path is configured")
	}
	if !settings.EnableNotifications {
		t.Error("default settings should enable notifications")
	}
}

func TestStore_Reload_SettingsFile(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "catalog.json", catalogJSON)
	settingsPath := writeFile(t, dir, "settings.json", `{
  "enable_notifications": true,
  "daily_notification_time": "19:00",
  "default_reminder_minutes": 10
}`)

	store := NewStore(catalogPath, settingsPath, 0)
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}

	_, settings := store.Snapshot()
	if settings.DailyNotificationTime != "19:00" {
		t.Errorf("DailyNotificationTime = %q, want 19:00", settings.DailyNotificationTime)
	}
	if settings.DefaultReminderMinutes != 10 {
		t.Errorf("DefaultReminderMinutes = %d, want 10", settings.DefaultReminderMinutes)
	}
}

func TestStore_Reload_DefaultLeadFallback(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "catalog.json", catalogJSON)

	store := NewStore(catalogPath, "", 30)
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}

	_, settings := store.Snapshot()
	if settings.DefaultReminderMinutes != 30 {
		t.Errorf("DefaultReminderMinutes = %d, want configured fallback 30", settings.DefaultReminderMinutes)
	}
}

func TestStore_Reload_SettingsFileWinsOverLeadFallback(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "catalog.json", catalogJSON)
	settingsPath := writeFile(t, dir, "settings.json", `{
  "enable_notifications": true,
  "daily_notification_time": "20:00",
  "default_reminder_minutes": 10
}`)

	store := NewStore(catalogPath, settingsPath, 30)
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}

	_, settings := store.Snapshot()
	if settings.DefaultReminderMinutes != 10 {
		t.Errorf("DefaultReminderMinutes = %d, want explicit settings value 10", settings.DefaultReminderMinutes)
	}
}

func TestStore_Reload_SwapsWholeCatalog(t *testing.T) {
	dir := t.TempDir()
	catalogPath := writeFile(t, dir, "catalog.json", catalogJSON)

	store := NewStore(catalogPath, "", 0)
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload error: %v", err)
	}

	writeFile(t, dir, "catalog.json", `[
  {"id": "sto1", "subject": "Storia", "day_of_week": 2, "start_time": "10:00", "end_time": "11:00"}
]`)

	if err := store.Reload(); err != nil {
		t.Fatalf("second Reload error: %v", err)
	}

	lessons, _ := store.Snapshot()
	if len(lessons) != 1 || lessons[0].ID != "sto1" {
		t.Errorf("snapshot after reload = %+v, want only sto1", lessons)
	}
}

func TestStore_Reload_Errors(t *testing.T) {
	dir := t.TempDir()

	missing := NewStore(filepath.Join(dir, "absent.json"), "", 0)
	if err := missing.Reload(); err == nil {
		t.Error("Reload should fail for a missing catalog file")
	}

	badPath := writeFile(t, dir, "bad.json", "{not json")
	malformed := NewStore(badPath, "", 0)
	if err := malformed.Reload(); err == nil {
		t.Error("Reload should fail for malformed JSON")
	}

	// A failed reload must not mark the store loaded.
	if malformed.Loaded() {
		t.Error("failed reload should leave the store unloaded")
	}
}
