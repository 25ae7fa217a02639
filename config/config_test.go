package config

import "testing"

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		want    Config
		wantErr bool
	}{
		{
			name: "defaults",
			want: Config{Level: "village", QuestFlag: "$QuestComplete_BigDemon", WindowTitle: "topdown", SpeedScale: 1},
		},
		{
			name: "env",
			env:  map[string]string{"TOPDOWN_LEVEL": "cave", "TOPDOWN_DEBUG": "true", "TOPDOWN_SPEED_SCALE": "1.5"},
			want: Config{Level: "cave", Debug: true, QuestFlag: "$QuestComplete_BigDemon", WindowTitle: "topdown", SpeedScale: 1.5},
		},
		{
			name: "flags_override_env",
			env:  map[string]string{"TOPDOWN_LEVEL": "cave"},
			args: []string{"-level", "town", "-hot", "-quest-flag", "met_king"},
			want: Config{Level: "town", HotReload: true, QuestFlag: "met_king", WindowTitle: "topdown", SpeedScale: 1},
		},
		{
			name:    "bad_env",
			env:     map[string]string{"TOPDOWN_DEBUG": "maybe"},
			wantErr: true,
		},
		{
			name:    "non_positive_speed",
			args:    []string{"-speed", "0"},
			wantErr: true,
		},
		{
			name:    "unknown_flag",
			args:    []string{"-nope"},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			got, err := Load(tc.args)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}
