// Package reclaim provides deferred disposal: owners retire a disposal
// callback instead of running it inline, and a later Drain runs every retired
// callback in FIFO order. It lets owning handles be dropped on hot paths while
// the actual release work happens at a point the caller chooses.
package reclaim
