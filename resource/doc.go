// Package resource implements the Controller that governs arena growth.
//
// The Controller provides centralized management of two resources shared by
// any number of arenas:
//
//   - Memory: track and limit the bytes reserved for slot segments
//   - Growth rate: token bucket bounding how often arenas may grow
//
// # Architecture
//
//	┌───────────────────────────────────────────────┐
//	│                  Controller                   │
//	├───────────────────────┬───────────────────────┤
//	│  Memory Limit (sem)   │  Growth Limiter       │
//	├───────────────────────┼───────────────────────┤
//	│  AcquireMemory        │  AllowGrowth          │
//	│  (non-blocking)       │  (non-blocking)       │
//	│  AcquireMemoryContext │  WaitGrowth           │
//	│  (blocking)           │  (blocking)           │
//	│  ReleaseMemory        │                       │
//	└───────────────────────┴───────────────────────┘
//
// Growth is admitted with AcquireGrowth, which reserves memory before taking a
// growth token and gives the memory back if the token is refused.
//
// Arena.Insert grows on demand and must stay bounded in time, so it uses the
// non-blocking variants and surfaces ErrMemoryLimitExceeded or
// ErrGrowthRateExceeded to the caller. Arena.Reserve takes a context and waits:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 64 << 20, // 64MB shared by all arenas
//	})
//
//	positions, _ := genarena.New[Position](genarena.WithResourceController(rc))
//	velocities, _ := genarena.New[Velocity](genarena.WithResourceController(rc))
//
// # Thread Safety
//
// All Controller methods are safe for concurrent use.
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
package resource
