/*
Package quantwo is a symbolic derivation engine for many-body quantum
chemistry equations.

It tokenises a LaTeX-flavoured equation string (package lexic), builds it
into a sum of algebraic Terms (package equation), and applies Wick's
theorem, particle-hole normal ordering, spin integration, connection and
Brillouin-theorem filtering, and antisymmetric-integral expansion to those
terms (package term). orbital, sqop, matrices, oper and container hold the
value types the algebra is built from; config, qerr and diag are the
ambient configuration, error and diagnostic plumbing threaded through every
stage.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package quantwo
