package azerr

import "testing"

func TestOk(t *testing.T) {
	if !Success.Ok() {
		t.Fatalf("Success.Ok() = false, want true")
	}
	if NullPointer.Ok() {
		t.Fatalf("NullPointer.Ok() = true, want false")
	}
}

func TestStringKnownCodesStable(t *testing.T) {
	cases := []struct {
		code Code
		want string
	}{
		{Success, "success"},
		{OutOfMemory, "out of memory"},
		{MixerRoutingCycle, "mixer routing cycle"},
		{DSPInterfaceNotGeneric, "dsp interface not generic"},
	}
	for _, c := range cases {
		if got := String(c.code); got != c.want {
			t.Errorf("String(%d) = %q, want %q", c.code, got, c.want)
		}
	}
}

func TestStringUnknownCodeFallback(t *testing.T) {
	got := String(Code(9999))
	want := "unknown azaudio error 9999"
	if got != want {
		t.Errorf("String(9999) = %q, want %q", got, want)
	}
}

func TestMessageKnownCodeIgnoresScratch(t *testing.T) {
	scratch := []byte("leftover")
	got := Message(NullPointer, scratch)
	if got != "null pointer" {
		t.Errorf("Message(NullPointer) = %q, want %q", got, "null pointer")
	}
	if string(scratch) != "leftover" {
		t.Errorf("scratch was mutated for a known code: %q", scratch)
	}
}

func TestMessageUnknownCodeUsesScratch(t *testing.T) {
	scratch := make([]byte, 0, 64)
	got := Message(Code(-1), scratch)
	want := "unknown azaudio error -1"
	if got != want {
		t.Errorf("Message(-1) = %q, want %q", got, want)
	}
}

func TestCodeImplementsError(t *testing.T) {
	var err error = InvalidFrameCount
	if err.Error() != "invalid frame count" {
		t.Errorf("err.Error() = %q", err.Error())
	}
}
