package rules

import (
	"errors"
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/suika/game"
	"github.com/milk9111/suika/prefabs"
)

var ErrNoAward = errors.New("rules: script does not define award")

// Script is a game.ScoreRule backed by a Tengo program. The program sees the
// globals tier, label and score and must assign award.
type Script struct {
	name     string
	compiled *tengo.Compiled
	fallback game.FixedAward
}

var _ game.ScoreRule = (*Script)(nil)

// Load compiles a script from the prefabs scripts directory.
func Load(name string, fallback int) (*Script, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("rules: load %s: %w", name, err)
	}
	return Compile(name, src, fallback)
}

func Compile(name string, src []byte, fallback int) (*Script, error) {
	script := tengo.NewScript(src)
	_ = script.Add("tier", 0)
	_ = script.Add("label", "")
	_ = script.Add("score", 0)

	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("rules: compile %s: %w", name, err)
	}
	return &Script{
		name:     name,
		compiled: compiled,
		fallback: game.FixedAward(fallback),
	}, nil
}

func (s *Script) Name() string {
	return s.name
}

// Award runs the script for one merge. Any script failure is logged and the
// fixed fallback award is used instead.
func (s *Script) Award(tier int, label string, score int) int {
	award, err := s.eval(tier, label, score)
	if err != nil {
		log.Printf("rules: %s tier=%d: %v", s.name, tier, err)
		return s.fallback.Award(tier, label, score)
	}
	return award
}

// eval recovers panics raised by the Tengo VM, such as integer division by
// zero, and reports them as errors.
func (s *Script) eval(tier int, label string, score int) (award int, err error) {
	if s == nil || s.compiled == nil {
		return 0, fmt.Errorf("nil script")
	}
	defer func() {
		if r := recover(); r != nil {
			award, err = 0, fmt.Errorf("rules: %s: %v", s.name, r)
		}
	}()
	if err := s.compiled.Set("tier", tier); err != nil {
		return 0, err
	}
	if err := s.compiled.Set("label", label); err != nil {
		return 0, err
	}
	if err := s.compiled.Set("score", score); err != nil {
		return 0, err
	}
	if err := s.compiled.Run(); err != nil {
		return 0, err
	}
	if !s.compiled.IsDefined("award") {
		return 0, ErrNoAward
	}
	v := s.compiled.Get("award")
	switch v.ValueType() {
	case "int", "float":
		return v.Int(), nil
	default:
		return 0, fmt.Errorf("rules: award is %s, want int", v.ValueType())
	}
}
