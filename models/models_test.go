package models

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/color-palette/api/colorspace"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser(UserSignupRequest{Username: "ada", Email: "ada@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatal(err)
	}
	if user.UserID == "" || user.Kind != Member || !user.Approved {
		t.Errorf("NewUser() = %+v", user)
	}
	if user.HashedPassword == "hunter22" {
		t.Error("password stored in plaintext")
	}
	if err := user.CheckPassword("hunter22"); err != nil {
		t.Errorf("CheckPassword(correct) = %v", err)
	}
	if err := user.CheckPassword("wrong"); err == nil {
		t.Error("CheckPassword(wrong) should fail")
	}
}

func TestAccessToken(t *testing.T) {
	user := User{UserID: "u1", Email: "a@b.c", Kind: Member}
	token, err := NewAccessToken(user, "secret", time.Now().Add(time.Minute))
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ValidateJWTToken(token, "secret")
	if err != nil {
		t.Fatalf("ValidateJWTToken() error = %v", err)
	}
	if claims.UserID != "u1" || claims.Scope != JWT.SCOPE {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := ValidateJWTToken(token, "other"); err == nil {
		t.Error("token accepted with the wrong secret")
	}

	expired, _ := NewAccessToken(user, "secret", time.Now().Add(-time.Minute))
	if _, err := ValidateJWTToken(expired, "secret"); err == nil {
		t.Error("expired token accepted")
	}
}

func TestPaletteRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     PaletteRequest
		want    []string
		wantErr bool
	}{
		{
			name: "normalizes colors",
			req:  PaletteRequest{Name: "  Sunset ", Colors: []string{"#FF0000", "0f0", " #123abc"}},
			want: []string{"#ff0000", "#00ff00", "#123abc"},
		},
		{name: "missing name", req: PaletteRequest{Colors: []string{"#ffffff"}}, wantErr: true},
		{name: "no colors", req: PaletteRequest{Name: "x"}, wantErr: true},
		{name: "bad color", req: PaletteRequest{Name: "x", Colors: []string{"#ggg000"}}, wantErr: true},
		{name: "too many", req: PaletteRequest{Name: "x", Colors: make([]string, MaxPaletteColors+1)}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(req.Colors, tt.want) {
				t.Errorf("colors = %v, want %v", req.Colors, tt.want)
			}
		})
	}

	_, err := NormalizeColors([]string{"nope"})
	if !errors.Is(err, colorspace.ErrInvalidHex) {
		t.Errorf("NormalizeColors error = %v, want ErrInvalidHex", err)
	}
}

func TestHistorySessionResponse(t *testing.T) {
	s := NewHistorySession(time.Hour)
	if resp := s.Response(); resp.Index != -1 || resp.Current != nil || resp.CanUndo {
		t.Errorf("empty response = %+v", resp)
	}

	s.State = s.State.Push([]string{"#ff0000"}).Push([]string{"#00ff00"}).Undo()
	resp := s.Response()
	if resp.Index != 0 || !resp.CanRedo || resp.CanUndo {
		t.Errorf("response = %+v", resp)
	}
	if !reflect.DeepEqual(resp.Current, []string{"#ff0000"}) {
		t.Errorf("current = %v", resp.Current)
	}
}
