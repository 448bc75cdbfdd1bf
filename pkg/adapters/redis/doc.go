// Package redis publishes session transitions to Redis pub/sub, optionally
// keeping a bounded history list for late subscribers.
package redis
