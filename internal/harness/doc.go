// Package harness runs bracket scenarios as executable contract tests.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	entrants: [A, B, C, D, E]
//	seed: 42
//	steps:
//	  - record: 1
//	    winner: A
//	  - record: 2          # no winner: randomized scores
//	  - record: 6
//	    expect_error: STATE
//	  - play: true         # play every remaining match
//	assertions:
//	  - type: winner
//	    match: 1
//	    expect: A
//	  - type: would_meet
//	    players: [A, C]
//	    match: 5
//	    round: 2
//
// # Assertion Types
//
//   - winner: winner of match (expect "?" for undecided)
//   - sides: displayed left and right labels of match ("?" for unset)
//   - champion: winner of the final ("?" for undecided)
//   - would_meet: the match and round at which two players would meet
//   - never_meet: two players that can never meet
//   - path: sorted match ids on a player's path to the final
//   - rounds: number of rounds
//   - byes: number of BYE slots
//
// # Deterministic Testing
//
// Each scenario runs in a fresh in-memory SQLite database with a fixed
// session id and a fixed seed (DefaultSeed when the scenario has none), so
// traces and bracket snapshots are identical across runs and can be
// compared against golden files.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/eight.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if !result.Pass {
//	    for _, err := range result.Errors {
//	        log.Println(err)
//	    }
//	}
package harness
