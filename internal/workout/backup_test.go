package workout_test

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/myrjola/liftlog/internal/workout"
)

func TestService_ExportImport_RoundTrip(t *testing.T) {
	ctx := t.Context()
	source, sourceDB := newTestService(t, nil)

	documents := map[string]string{
		workout.LogsKey:     `[{"date":"2025-01-06","dayId":"push","startTime":1,"exercises":{"bench":[{"reps":5,"weight":100,"completed":true}]}}]`,
		workout.ProgramKey:  `[{"id":"push","name":"İtiş <Push> & \"more\"","exercises":[]}]`,
		workout.PlanKey:     "{\n  \"2025-01-07\": \"push\"\n}",
		workout.SettingsKey: `{"restBetweenSets":60}`,
	}
	for key, value := range documents {
		if err := sourceDB.Set(ctx, key, []byte(value)); err != nil {
			t.Fatalf("Set %s: %v", key, err)
		}
	}
	if _, err := source.StartWorkout(ctx, "push"); err != nil {
		t.Fatalf("StartWorkout: %v", err)
	}

	exported, err := source.Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	target, targetDB := newTestService(t, nil)
	if err = target.Import(ctx, exported); err != nil {
		t.Fatalf("Import: %v", err)
	}
	for key, want := range documents {
		got, ok, err := targetDB.Get(ctx, key)
		if err != nil || !ok {
			t.Fatalf("Get %s = ok %v, err %v", key, ok, err)
		}
		if diff := cmp.Diff(want, string(got)); diff != "" {
			t.Errorf("%s mismatch (-want +got):\n%s", key, diff)
		}
	}
	if _, ok, _ := targetDB.Get(ctx, workout.SessionKey); ok {
		t.Error("the active session was exported")
	}

	reexported, err := target.Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if reexported != exported {
		t.Error("export of the imported state differs from the original export")
	}
}

func TestService_Export_AbsentDocumentsAreNull(t *testing.T) {
	ctx := t.Context()
	svc, db := newTestService(t, nil)
	if err := db.Set(ctx, workout.PlanKey, []byte(`{}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	exported, err := svc.Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(exported)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := `{"logs":null,"program":null,"plan":"{}","settings":null}`
	if diff := cmp.Diff(want, string(decoded)); diff != "" {
		t.Errorf("export mismatch (-want +got):\n%s", diff)
	}
}

func TestService_Import_KeepsAbsentFields(t *testing.T) {
	ctx := t.Context()
	svc, db := newTestService(t, nil)
	if err := db.Set(ctx, workout.SettingsKey, []byte(`{"restBetweenSets":30}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	text := base64.StdEncoding.EncodeToString([]byte(`{"plan":"{\"2025-01-01\":\"push\"}","settings":""}`))
	if err := svc.Import(ctx, text); err != nil {
		t.Fatalf("Import: %v", err)
	}
	settings, _, _ := db.Get(ctx, workout.SettingsKey)
	if string(settings) != `{"restBetweenSets":30}` {
		t.Errorf("settings = %s, want previous value", settings)
	}
	plan, _, _ := db.Get(ctx, workout.PlanKey)
	if string(plan) != `{"2025-01-01":"push"}` {
		t.Errorf("plan = %s", plan)
	}
}

func TestService_Import_RejectsInvalidBackups(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "not base64", text: "%%%"},
		{name: "not json", text: base64.StdEncoding.EncodeToString([]byte("hello"))},
		{
			name: "one field is not json",
			text: base64.StdEncoding.EncodeToString([]byte(`{"plan":"{}","logs":"[{broken"}`)),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			svc, db := newTestService(t, nil)

			if err := svc.Import(ctx, tt.text); !errors.Is(err, workout.ErrInvalidBackup) {
				t.Fatalf("Import error = %v, want ErrInvalidBackup", err)
			}
			if _, ok, _ := db.Get(ctx, workout.PlanKey); ok {
				t.Error("a rejected import wrote the plan")
			}
		})
	}
}
