/*
Package ports defines the driven ports (interfaces) for clui hosts.

These interfaces decouple the compiled session from external implementations,
allowing the same script to come from various sources and its transitions to be
shipped to various sinks.

# Key Interfaces

  - ScriptLoader: Responsible for loading a Script (e.g., from Loam, a file or Memory).
  - EventPublisher: Responsible for forwarding transition events (e.g., to Redis).
  - StepBuilder: Builds steps at runtime for remote hosts that insert into a session.
*/
package ports
