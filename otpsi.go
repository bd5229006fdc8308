/*
Package otpsi is a threshold multi-party private set intersection (MPSI)
library. Among n parties each holding a private set, an aggregator learns
exactly the elements appearing in at least k of the n input sets and
nothing else with high probability.

The construction combines three cryptographic primitives into a single
end-to-end pipeline:

  - gf128: binary-field arithmetic over GF(2^128).
  - okvs: a randomized-banded oblivious key-value store (RB-OKVS).
  - placement and aggregator: a cuckoo-style placement table with
    Lagrange-interpolation-based intersection recovery.

Package party orchestrates the per-party protocol phases (S12/S13/S14) and
package transport abstracts the exchange of OKVS tables and placement
tables between parties and the aggregator.
*/
package otpsi
