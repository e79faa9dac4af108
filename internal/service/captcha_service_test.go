package service

import (
	"errors"
	"testing"

	"github.com/webbangiay/internal/config"
)

func TestCaptchaDisabledPassesThrough(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Enabled: false})
	if err := svc.Verify(CaptchaVerifyPayload{}); err != nil {
		t.Fatalf("disabled captcha should pass, got %v", err)
	}
	if _, err := svc.GenerateImageChallenge(); !errors.Is(err, ErrCaptchaUnavailable) {
		t.Fatalf("expected ErrCaptchaUnavailable, got %v", err)
	}
}

func TestCaptchaGenerateAndVerifyOnce(t *testing.T) {
	svc := NewCaptchaService(config.CaptchaConfig{Enabled: true, Length: 4})
	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate captcha failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("unexpected challenge: %+v", challenge)
	}

	if err := svc.Verify(CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID}); !errors.Is(err, ErrCaptchaRequired) {
		t.Fatalf("expected ErrCaptchaRequired, got %v", err)
	}
	answer := svc.ensureStore().Get(challenge.CaptchaID, false)
	if len(answer) != 4 {
		t.Fatalf("unexpected stored answer %q", answer)
	}
	if err := svc.Verify(CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: answer}); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if err := svc.Verify(CaptchaVerifyPayload{CaptchaID: challenge.CaptchaID, CaptchaCode: answer}); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("captcha must be single use, got %v", err)
	}
}
