package analysis

// minStdDevSamples is the smallest sample count with a defined sample
// standard deviation.
const minStdDevSamples = 2
