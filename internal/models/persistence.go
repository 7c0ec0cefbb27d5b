package models

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// SaveDir is the root of the file save slots.
var SaveDir = ".saves"

const stateFile = "state.yaml.zst"

// EncodeState renders the state as zstd-compressed YAML.
func EncodeState(s GameState) ([]byte, error) {
	raw, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	if _, err := enc.Write(raw); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeState reverses EncodeState and migrates older saves.
func DecodeState(b []byte) (GameState, error) {
	var s GameState
	dec, err := zstd.NewReader(bytes.NewReader(b))
	if err != nil {
		return s, err
	}
	defer dec.Close()
	raw, err := io.ReadAll(dec)
	if err != nil {
		return s, fmt.Errorf("decompress state: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("unmarshal state: %w", err)
	}
	s.Migrate()
	return s, nil
}

// Save writes the state into SaveDir/<name>/.
func (s GameState) Save(name string) error {
	dir := filepath.Join(SaveDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := EncodeState(s)
	if err != nil {
		return err
	}
	tmp := filepath.Join(dir, stateFile+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, filepath.Join(dir, stateFile))
}

// LoadState reads SaveDir/<name>/.
func LoadState(name string) (GameState, error) {
	data, err := os.ReadFile(filepath.Join(SaveDir, name, stateFile))
	if err != nil {
		return GameState{}, err
	}
	return DecodeState(data)
}

// ListSlots returns every save slot that holds a state file.
func ListSlots() ([]string, error) {
	if _, err := os.Stat(SaveDir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(SaveDir)
	if err != nil {
		return nil, err
	}

	var slots []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := os.Stat(filepath.Join(SaveDir, entry.Name(), stateFile)); err == nil {
			slots = append(slots, entry.Name())
		}
	}
	return slots, nil
}

// DeleteSlot removes a save slot.
func DeleteSlot(name string) error {
	return os.RemoveAll(filepath.Join(SaveDir, name))
}

// Migrate fills fields that older saves do not carry.
func (s *GameState) Migrate() {
	if s.CurrentSeason < 1 {
		s.CurrentSeason = 1
	}
	if s.CurrentWeek < 1 {
		s.CurrentWeek = 1
	}
	if s.Scout.Skills == nil {
		s.Scout.Skills = map[string]float64{}
	}
	if _, ok := s.Scout.Skills[SkillPlayerJudgment]; !ok {
		s.Scout.Skills[SkillPlayerJudgment] = defaultSkill(s.Scout.Skills)
	}
	if s.Scout.Attributes == nil {
		s.Scout.Attributes = map[string]float64{}
	}
	if s.Scout.CareerTier < 1 {
		s.Scout.CareerTier = 1
	}
	if s.Scout.CareerPath == "" {
		s.Scout.CareerPath = PathClub
	}
	s.SettleStale()
}

func defaultSkill(skills map[string]float64) float64 {
	if len(skills) == 0 {
		return 5
	}
	total := 0.0
	for _, v := range skills {
		total += v
	}
	return total / float64(len(skills))
}
