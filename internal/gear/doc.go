// Package gear is the kinematics core of the gear train builder.
//
// Gears sit on grid cells; their radius follows from the tooth count. Two gears mesh
// when their centres are within 20% of the sum of their radii. From a single driver
// gear, BuildChain assigns every reachable gear a speed ratio and a rotation direction,
// and ComputeAngles turns a driver angle into per-gear angles.
//
// Everything here is a pure function of the gear set: nothing is cached between calls.
package gear
