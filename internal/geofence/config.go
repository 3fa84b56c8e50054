package geofence

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Circle - круговая зона: центр и радиус в метрах или километрах
type Circle struct {
	Lat      flexFloat `yaml:"lat"`
	Lon      flexFloat `yaml:"lon"`
	RadiusM  flexFloat `yaml:"radius_m"`
	RadiusKM flexFloat `yaml:"radius_km"`
}

// RadiusKm возвращает радиус в километрах. radius_km приоритетнее radius_m.
func (c Circle) RadiusKm() float64 {
	if c.RadiusKM > 0 {
		return float64(c.RadiusKM)
	}
	return float64(c.RadiusM) / 1000
}

// Area - зона наблюдения единицы: коды сетки и круги
type Area struct {
	Grids   []string `yaml:"grids"`
	Circles []Circle `yaml:"circles"`
}

// Config - зоны наблюдения по идентификатору единицы
type Config map[string]Area

// Load читает файл геозон (YAML или JSON). Отсутствие файла отключает предупреждения
// и не считается ошибкой. Зоны неизвестных каналов отбрасываются.
func Load(path string, known []string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("geofence: read %s: %w", path, err)
	}
	return Parse(data, known)
}

// Parse разбирает содержимое файла геозон
func Parse(data []byte, known []string) (Config, error) {
	var raw map[string]Area
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("geofence: decode: %w", err)
	}

	allowed := make(map[string]struct{}, len(known))
	for _, k := range known {
		allowed[strings.ToUpper(k)] = struct{}{}
	}

	cfg := make(Config, len(raw))
	for unit, area := range raw {
		unit = strings.ToUpper(strings.TrimSpace(unit))
		if _, ok := allowed[unit]; !ok {
			continue
		}
		grids := make([]string, 0, len(area.Grids))
		for _, g := range area.Grids {
			if g = strings.ToUpper(strings.TrimSpace(g)); g != "" {
				grids = append(grids, g)
			}
		}
		area.Grids = grids
		cfg[unit] = area
	}
	return cfg, nil
}

// flexFloat принимает число как числом, так и строкой
type flexFloat float64

func (f *flexFloat) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", n.Line)
	}
	s := strings.TrimSpace(n.Value)
	if s == "" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	*f = flexFloat(v)
	return nil
}
