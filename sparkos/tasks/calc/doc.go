// Package calc implements the SparkCalc task: a button-driven four-function
// calculator rendered to the framebuffer.
//
// The Engine holds the expression as a typed sequence of operand and operator
// tokens and evaluates it strictly left to right; there is no operator
// precedence. The Task wires an Engine to kernel IPC, the keypad and the
// display.
package calc
