package breakout

// PostEffects holds the post-processing switches the renderer reads. The
// simulation only toggles them.
type PostEffects struct {
	Confuse   bool
	Chaos     bool
	Shake     bool
	ShakeTime float32 // seconds of shake left
}

// SetConfuse switches confuse; turning it on turns chaos off.
func (p *PostEffects) SetConfuse(on bool) {
	p.Confuse = on
	if on {
		p.Chaos = false
	}
}

// SetChaos switches chaos; turning it on turns confuse off.
func (p *PostEffects) SetChaos(on bool) {
	p.Chaos = on
	if on {
		p.Confuse = false
	}
}

// StartShake turns shake on for d seconds.
func (p *PostEffects) StartShake(d float32) {
	p.Shake = true
	p.ShakeTime = d
}

// Update counts the shake timer down and clears shake when it runs out.
func (p *PostEffects) Update(dt float32) {
	if p.ShakeTime <= 0 {
		return
	}
	p.ShakeTime -= dt
	if p.ShakeTime <= 0 {
		p.Shake = false
	}
}

// Reset clears every effect.
func (p *PostEffects) Reset() {
	*p = PostEffects{}
}
