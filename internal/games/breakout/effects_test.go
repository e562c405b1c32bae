package breakout

import "testing"

func TestPostEffectsExclusive(t *testing.T) {
	var fx PostEffects

	fx.SetChaos(true)
	fx.SetConfuse(true)
	if !fx.Confuse || fx.Chaos {
		t.Errorf("confuse=%v chaos=%v, want confuse only", fx.Confuse, fx.Chaos)
	}

	fx.SetChaos(true)
	if fx.Confuse || !fx.Chaos {
		t.Errorf("confuse=%v chaos=%v, want chaos only", fx.Confuse, fx.Chaos)
	}

	// Turning one off leaves the other alone.
	fx.SetConfuse(false)
	if !fx.Chaos {
		t.Error("disabling confuse should not touch chaos")
	}
}

func TestPostEffectsShake(t *testing.T) {
	var fx PostEffects
	fx.StartShake(0.05)
	if !fx.Shake {
		t.Fatal("shake should start")
	}

	fx.Update(0.03)
	if !fx.Shake {
		t.Error("shake ended early")
	}
	fx.Update(0.03)
	if fx.Shake {
		t.Error("shake should end once its time runs out")
	}

	fx.StartShake(1)
	fx.SetChaos(true)
	fx.Reset()
	if fx != (PostEffects{}) {
		t.Errorf("Reset left %+v", fx)
	}
}
