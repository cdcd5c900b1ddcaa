// Package triage is the rule-based guidance engine.
//
// Every function here is pure over a knowledge base snapshot and its
// inputs. Nothing blocks, allocates shared state, or performs I/O, so the
// functions are safe to call from any number of goroutines against the
// same *domain.KnowledgeBase.
//
// The pipeline for one query is:
//
//	DetectLanguage -> Extract -> Assess -> Compose
//
// with RankResources and AssessVitals used alongside for emergencies.
package triage
