/*
Package resilience provides a circuit breaker for calls leaving the process.

The song catalog refresh runs through a Breaker so an unreachable catalog
host is probed once per Timeout instead of on every refresh.

	breaker := resilience.New("songs", resilience.Settings{
		Timeout: 5 * time.Minute,
		ReadyToTrip: func(c resilience.Counts) bool {
			return c.ConsecutiveFailures >= 3
		},
	})
	err := breaker.Execute(func() error { return fetch(ctx) })

States:

	Closed --[failures]-> Open --[timeout]-> Half-Open --[successes]-> Closed
	                                           |
	                                       [failure]
	                                           v
	                                          Open
*/
package resilience
