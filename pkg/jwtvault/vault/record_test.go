package vault

import (
	"errors"
	"strings"
	"testing"
	"time"
)

var testDefaults = IssuanceDefaults{
	Issuer:   "api-development-server",
	Audience: "api-engineers",
	Validity: 24 * time.Hour,
}

func TestDecodeIssuance(t *testing.T) {
	tests := []struct {
		name     string
		rec      Record
		defaults IssuanceDefaults
		want     Issuance
		wantErr  string
	}{
		{
			name:     "secret only, defaults apply",
			rec:      Record{FieldPassword: "s3cret"},
			defaults: testDefaults,
			want: Issuance{
				Secret:   []byte("s3cret"),
				Issuer:   "api-development-server",
				Audience: "api-engineers",
				Validity: 24 * time.Hour,
			},
		},
		{
			name:     "login field overrides issuer",
			rec:      Record{FieldPassword: "s3cret", FieldLogin: "staging-server"},
			defaults: testDefaults,
			want: Issuance{
				Secret:   []byte("s3cret"),
				Issuer:   "staging-server",
				Audience: "api-engineers",
				Validity: 24 * time.Hour,
			},
		},
		{
			name: "notes override everything",
			rec: Record{
				FieldPassword: "s3cret",
				FieldNotes:    `{"issuer":"other","audience":"ops","expiration_hours":1}`,
			},
			defaults: testDefaults,
			want: Issuance{
				Secret:   []byte("s3cret"),
				Issuer:   "other",
				Audience: "ops",
				Validity: time.Hour,
			},
		},
		{
			name:     "plain-text notes are ignored",
			rec:      Record{FieldPassword: "s3cret", FieldNotes: "rotated by ops on 2026-03-14"},
			defaults: testDefaults,
			want: Issuance{
				Secret:   []byte("s3cret"),
				Issuer:   "api-development-server",
				Audience: "api-engineers",
				Validity: 24 * time.Hour,
			},
		},
		{
			name:     "missing secret",
			rec:      Record{FieldLogin: "whatever"},
			defaults: testDefaults,
			wantErr:  "no signing material",
		},
		{
			name:     "whitespace secret",
			rec:      Record{FieldPassword: "   \n"},
			defaults: testDefaults,
			wantErr:  "no signing material",
		},
		{
			name:     "broken notes JSON",
			rec:      Record{FieldPassword: "s3cret", FieldNotes: `{"issuer":`},
			defaults: testDefaults,
			wantErr:  "not valid JSON",
		},
		{
			name:     "negative expiration override",
			rec:      Record{FieldPassword: "s3cret", FieldNotes: `{"expiration_hours":-2}`},
			defaults: testDefaults,
			wantErr:  "must be positive",
		},
		{
			name:     "no issuer anywhere",
			rec:      Record{FieldPassword: "s3cret"},
			defaults: IssuanceDefaults{Audience: "api-engineers", Validity: time.Hour},
			wantErr:  "no issuer",
		},
		{
			name:     "no validity anywhere",
			rec:      Record{FieldPassword: "s3cret"},
			defaults: IssuanceDefaults{Issuer: "i", Audience: "a"},
			wantErr:  "validity must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeIssuance(tt.rec, tt.defaults)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got %+v", tt.wantErr, got)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error %q does not mention %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeIssuance failed: %v", err)
			}
			if string(got.Secret) != string(tt.want.Secret) ||
				got.Issuer != tt.want.Issuer ||
				got.Audience != tt.want.Audience ||
				got.Validity != tt.want.Validity {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeIssuanceMissingSecretError(t *testing.T) {
	_, err := DecodeIssuance(Record{}, testDefaults)
	if !errors.Is(err, ErrNoSigningMaterial) {
		t.Errorf("got %v, want ErrNoSigningMaterial", err)
	}
}

func TestEncodeMetadata(t *testing.T) {
	issued := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	got := EncodeMetadata(issued, issued.Add(time.Hour))

	want := `{"issued_at":"2026-03-14T12:00:00Z","expires_at":"2026-03-14T13:00:00Z"}`
	if got != want {
		t.Errorf("EncodeMetadata = %q, want %q", got, want)
	}
}
