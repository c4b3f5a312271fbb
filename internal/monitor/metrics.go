package monitor

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/midnighthunt/hunt-server-go/internal/game/rules"
)

// Metrics holds the engine's prometheus collectors.
type Metrics struct {
	GamesStarted    prometheus.Counter
	GamesFinished   prometheus.Counter
	AttackRolls     prometheus.Counter
	AttackMisses    prometheus.Counter
	DamageDealt     prometheus.Counter
	Deaths          prometheus.Counter
	AbilityFires    prometheus.Counter
	ActiveGames     prometheus.Gauge
	DamagePerAttack prometheus.Histogram
}

// NewMetrics creates and registers the collectors under the namespace.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		GamesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Total number of games started",
		}),
		GamesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Total number of games finished",
		}),
		AttackRolls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attack_rolls_total",
			Help:      "Total number of attack rolls",
		}),
		AttackMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attack_misses_total",
			Help:      "Total number of missed attacks",
		}),
		DamageDealt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "damage_dealt_total",
			Help:      "Total damage applied to players",
		}),
		Deaths: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "player_deaths_total",
			Help:      "Total number of player deaths",
		}),
		AbilityFires: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ability_fires_total",
			Help:      "Total passive triggers and active activations",
		}),
		ActiveGames: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_games",
			Help:      "Number of sessions in play",
		}),
		DamagePerAttack: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "damage_per_attack",
			Help:      "Damage distribution per landed attack",
			Buckets:   prometheus.LinearBuckets(1, 1, 8),
		}),
	}

	reg.MustRegister(
		m.GamesStarted,
		m.GamesFinished,
		m.AttackRolls,
		m.AttackMisses,
		m.DamageDealt,
		m.Deaths,
		m.AbilityFires,
		m.ActiveGames,
		m.DamagePerAttack,
	)
	return m
}

// Observe subscribes the collectors to a session event bus. Listeners only
// count; they never touch game state.
func (m *Metrics) Observe(bus *rules.EventBus) {
	bus.SubscribeTyped(rules.EventAttackRolled, func(evt rules.Event) {
		m.AttackRolls.Inc()
		m.DamagePerAttack.Observe(float64(evt.Amount))
	})
	bus.SubscribeTyped(rules.EventAttackMissed, func(rules.Event) {
		m.AttackRolls.Inc()
		m.AttackMisses.Inc()
	})
	bus.SubscribeTyped(rules.EventDamageDealt, func(evt rules.Event) {
		m.DamageDealt.Add(float64(evt.Amount))
	})
	bus.SubscribeTyped(rules.EventPlayerDied, func(rules.Event) {
		m.Deaths.Inc()
	})
	bus.SubscribeTyped(rules.EventAbilityTriggered, func(rules.Event) {
		m.AbilityFires.Inc()
	})
	bus.SubscribeTyped(rules.EventAbilityActivated, func(rules.Event) {
		m.AbilityFires.Inc()
	})
	bus.SubscribeTyped(rules.EventGameEnded, func(rules.Event) {
		m.GamesFinished.Inc()
		m.ActiveGames.Dec()
	})
}
