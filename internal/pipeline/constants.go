package pipeline

// stereoChannels is the interleaved channel count every stage handles.
const stereoChannels = 2
