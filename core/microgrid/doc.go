// Package microgrid replays one day of hourly generation and load against a
// battery and a hydrogen storage pair.
//
// The dispatch is greedy: surplus tops up the battery first and the rest is
// turned into hydrogen; shortfall drains the battery first and the fuel cell
// covers what is left, up to its rated power. Each hour depends on the storage
// state left by the previous one, so a day is an ordered fold of Step over the
// samples. Independent days may be simulated concurrently with a Runner.
package microgrid
