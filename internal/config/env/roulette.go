package env

import (
	"errors"
	"fmt"
	"os"
	"roulette_backend/internal/config"
	"roulette_backend/internal/model"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultStartingBalance = 10000
	defaultSpinDelay       = 3 * time.Second
	defaultSettleDelay     = 4 * time.Second
	defaultStatsWindow     = 500
)

var defaultChips = []int{10, 50, 100, 500, 1000}

// Структура секции roulette в config.yaml
type rouletteFile struct {
	Roulette struct {
		StartingBalance int           `yaml:"starting_balance"`
		Chips           []int         `yaml:"chips"`
		DefaultChip     int           `yaml:"default_chip"`
		SpinDelay       time.Duration `yaml:"spin_delay"`
		SettleDelay     time.Duration `yaml:"settle_delay"`
		StatsWindow     int           `yaml:"stats_window"`
		Prizes          []struct {
			Name        string `yaml:"name"`
			Emoji       string `yaml:"emoji"`
			Description string `yaml:"description"`
			Price       int    `yaml:"price"`
		} `yaml:"prizes"`
	} `yaml:"roulette"`
}

type rouletteConfig struct {
	startingBalance int
	chips           []int
	defaultChip     int
	spinDelay       time.Duration
	settleDelay     time.Duration
	statsWindow     int
	prizes          []model.Prize
}

// NewRouletteConfigFromYAML - читает настройки рулетки из yaml файла
func NewRouletteConfigFromYAML(path string) (config.RouletteConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roulette config: %w", err)
	}
	return ParseRouletteConfig(data)
}

// ParseRouletteConfig - разбирает yaml и подставляет значения по умолчанию
func ParseRouletteConfig(data []byte) (config.RouletteConfig, error) {
	var f rouletteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse roulette config: %w", err)
	}
	raw := f.Roulette

	cfg := &rouletteConfig{
		startingBalance: raw.StartingBalance,
		chips:           raw.Chips,
		defaultChip:     raw.DefaultChip,
		spinDelay:       raw.SpinDelay,
		settleDelay:     raw.SettleDelay,
		statsWindow:     raw.StatsWindow,
	}

	if cfg.startingBalance == 0 {
		cfg.startingBalance = defaultStartingBalance
	}
	if len(cfg.chips) == 0 {
		cfg.chips = slices.Clone(defaultChips)
	}
	if cfg.defaultChip == 0 {
		cfg.defaultChip = cfg.chips[0]
	}
	if cfg.spinDelay == 0 {
		cfg.spinDelay = defaultSpinDelay
	}
	if cfg.settleDelay == 0 {
		cfg.settleDelay = defaultSettleDelay
	}
	if cfg.statsWindow == 0 {
		cfg.statsWindow = defaultStatsWindow
	}

	for _, p := range raw.Prizes {
		cfg.prizes = append(cfg.prizes, model.Prize{
			Name:        p.Name,
			Emoji:       p.Emoji,
			Description: p.Description,
			Price:       p.Price,
		})
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *rouletteConfig) validate() error {
	if cfg.startingBalance < 0 {
		return errors.New("starting balance must not be negative")
	}
	for _, c := range cfg.chips {
		if c <= 0 {
			return fmt.Errorf("chip value must be positive, got %d", c)
		}
	}
	if !slices.Contains(cfg.chips, cfg.defaultChip) {
		return fmt.Errorf("default chip %d is not one of the chips", cfg.defaultChip)
	}
	if cfg.spinDelay < 0 || cfg.settleDelay < 0 {
		return errors.New("delays must not be negative")
	}
	if cfg.statsWindow < 0 {
		return errors.New("stats window must not be negative")
	}
	return nil
}

func (cfg *rouletteConfig) StartingBalance() int {
	return cfg.startingBalance
}

func (cfg *rouletteConfig) Chips() []int {
	return slices.Clone(cfg.chips)
}

func (cfg *rouletteConfig) DefaultChip() int {
	return cfg.defaultChip
}

func (cfg *rouletteConfig) SpinDelay() time.Duration {
	return cfg.spinDelay
}

func (cfg *rouletteConfig) SettleDelay() time.Duration {
	return cfg.settleDelay
}

func (cfg *rouletteConfig) StatsWindow() int {
	return cfg.statsWindow
}

func (cfg *rouletteConfig) Prizes() []model.Prize {
	return slices.Clone(cfg.prizes)
}
