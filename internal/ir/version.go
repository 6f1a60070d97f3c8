package ir

// TraceVersion is the step encoding version written next to every stored
// recording.
const TraceVersion = "1"
