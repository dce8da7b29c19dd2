package main

import "github.com/tanema/gween"

// Action is what runs while a tween plays and when it finishes. nexts start
// follow-up tweens.
type Action struct {
	nexts    []func(g *Game)
	onChange func(float32)
	onFinish []func()
}

func (a *Action) addOnFinish(f func()) {
	a.onFinish = append(a.onFinish, f)
}

func (a *Action) next(t *gween.Tween) *Action {
	action := &Action{}
	a.nexts = append(a.nexts,
		func(g *Game) {
			g.Tweens[t] = *action
		})
	return action
}

func (g *Game) updateTweens(dt float32) {
	for t, a := range g.Tweens {
		curr, finished := t.Update(dt)
		if a.onChange != nil {
			a.onChange(curr)
		}
		if finished {
			for _, onFinish := range a.onFinish {
				onFinish()
			}
			for _, next := range a.nexts {
				next(g)
			}
			delete(g.Tweens, t)
		}
	}
}
