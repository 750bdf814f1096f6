package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"osintgraph-client/application/ports"
	"osintgraph-client/domain/core/aggregates"
	"osintgraph-client/domain/core/entities"
	"osintgraph-client/domain/core/valueobjects"
	pkgerrors "osintgraph-client/pkg/errors"
	"osintgraph-client/pkg/notifications"
	"osintgraph-client/pkg/observability"
)

// CommitFields are the user-editable node fields confirmed by the edit form.
type CommitFields struct {
	Display string `validate:"required"`
	Value   string
	Notes   string
}

// Editor is the graph interaction surface: it routes user gestures into the
// write-back scheduler, the pending tracker, the history manager and the
// relocation state machine, mutating local state synchronously and pushing
// changes to the remote store without waiting on it.
//
// All methods are safe for concurrent use; a single mutex serializes them,
// standing in for the UI thread. Remote calls run on their own goroutines
// and their results only ever touch notifications and metrics, never the
// graph.
type Editor struct {
	mu sync.Mutex

	projectID valueobjects.ProjectID
	project   *entities.Project
	graph     *aggregates.Graph

	// attachments is the global per-project attachment metadata cache;
	// viewedAttachments mirrors the subset owned by the viewed node.
	attachments       map[valueobjects.AttachmentID]*entities.Attachment
	viewed            valueobjects.NodeID
	viewedAttachments []*entities.Attachment

	scheduler  *WritebackScheduler
	pending    *PendingTracker
	history    *HistoryManager
	reloc      *Relocation
	dispatcher *RemoteDispatcher

	remote   ports.RemoteStore
	notifier notifications.Notifier
	logger   *zap.Logger
	metrics  *observability.Collector
	validate *validator.Validate
}

// NewEditor assembles an editor. quiet is the write-back quiet period;
// historyLimit bounds the undo stack.
func NewEditor(
	remote ports.RemoteStore,
	notifier notifications.Notifier,
	logger *zap.Logger,
	metrics *observability.Collector,
	quiet time.Duration,
	historyLimit int,
) *Editor {
	return &Editor{
		graph:       aggregates.NewGraph(),
		attachments: make(map[valueobjects.AttachmentID]*entities.Attachment),
		scheduler:   NewWritebackScheduler(quiet, logger, metrics),
		pending:     NewPendingTracker(metrics),
		history:     NewHistoryManager(historyLimit, metrics),
		reloc:       NewRelocation(),
		dispatcher:  NewRemoteDispatcher(),
		remote:      remote,
		notifier:    notifier,
		logger:      logger,
		metrics:     metrics,
		validate:    validator.New(),
	}
}

// Hydrate opens a project: one bulk read replaces local state wholesale.
// Hydrated entities are all confirmed, so the pending tracker, the history
// and the relocation mode are reset rather than consulted. Outstanding
// writes for the previous project are flushed first.
func (e *Editor) Hydrate(ctx context.Context, projectID valueobjects.ProjectID) error {
	e.scheduler.Flush()

	graph, err := e.remote.FetchProject(ctx, projectID)
	e.metrics.ObserveRemoteCall("project", "fetch", err)
	if err != nil {
		e.notifier.Notify(notifications.Error("failed to load project: %v", err))
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.projectID = projectID
	e.project = nil
	e.graph.Replace(graph.Nodes, graph.Links)
	e.attachments = make(map[valueobjects.AttachmentID]*entities.Attachment, len(graph.Attachments))
	for _, att := range graph.Attachments {
		e.attachments[att.ID] = att
	}
	e.viewed = valueobjects.NodeID{}
	e.viewedAttachments = nil
	e.pending.Reset()
	e.history.Reset()
	e.reloc.Cancel()

	e.logger.Info("project hydrated",
		zap.String("project", projectID.String()),
		zap.Int("nodes", e.graph.NodeCount()),
		zap.Int("links", e.graph.LinkCount()),
		zap.Int("attachments", len(e.attachments)),
	)
	return nil
}

// Projects lists the projects available on the remote store.
func (e *Editor) Projects(ctx context.Context) ([]*entities.Project, error) {
	projects, err := e.remote.FetchProjects(ctx)
	e.metrics.ObserveRemoteCall("project", "list", err)
	if err != nil {
		e.notifier.Notify(notifications.Error("failed to list projects: %v", err))
		return nil, err
	}
	return projects, nil
}

// SetProject records the active project's metadata so structural writes can
// touch its last-updated stamp.
func (e *Editor) SetProject(project *entities.Project) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.project = project.Clone()
	e.projectID = project.ID
}

// CreateNode inserts a new node into local state and marks it pending. No
// remote call is made: an entity the user has not yet confirmed must never
// exist in the remote store, and cancelling it stays a pure local operation.
func (e *Editor) CreateNode(nodeType valueobjects.NodeType, pos valueobjects.Position) (valueobjects.NodeID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !nodeType.IsValid() {
		err := pkgerrors.NewValidationError("unknown node type %q", nodeType)
		e.notifier.Notify(notifications.Error("%v", err))
		return valueobjects.NodeID{}, err
	}

	node := entities.NewNode(e.projectID, nodeType, pos)
	if err := e.graph.AddNode(node); err != nil {
		return valueobjects.NodeID{}, err
	}
	e.pending.Add(node.ID)

	e.logger.Debug("node created locally",
		zap.String("node", node.ID.String()),
		zap.String("type", string(nodeType)),
	)
	return node.ID, nil
}

// CommitNode confirms the edit form. A pending node is created on the remote
// store (and leaves the pending set on issuance, not on response); a
// confirmed node's edit is routed through the write-back scheduler. Types
// whose value mirrors the display name have the value overwritten before
// committing.
func (e *Editor) CommitNode(id valueobjects.NodeID, fields CommitFields) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	node, ok := e.graph.Node(id)
	if !ok {
		err := pkgerrors.NewNotFoundError("node")
		e.notifier.Notify(notifications.Error("%v", err))
		return err
	}
	if err := e.validate.Struct(fields); err != nil {
		appErr := pkgerrors.NewValidationError("invalid node fields").WithCause(err)
		e.notifier.Notify(notifications.Error("%v", appErr))
		return appErr
	}
	if node.Type.MirrorsDisplay() {
		fields.Value = fields.Display
	}

	// Snapshot the state the commit is about to replace.
	e.history.Capture(e.graph)

	node.Display = fields.Display
	node.Value = fields.Value
	node.Notes = fields.Notes
	node.Touch()

	if e.pending.Remove(id) {
		// First confirmation: the remote create carries everything set so
		// far, final position included. Any writes coalescing for this id
		// (there should be none for a pending node) die here.
		e.scheduler.Cancel(nodeKey(id))
		payload := node.Clone()
		e.remoteWrite(nodeKey(id), "node", "create", "create node", func(ctx context.Context) error {
			_, err := e.remote.CreateNode(ctx, payload)
			return err
		})
	} else {
		e.scheduleNodeUpdate(node)
	}
	e.touchProjectLocked()

	e.notifier.Notify(notifications.Success("node %q saved", node.Display))
	return nil
}

// DiscardNode removes a node from local state. A pending node vanishes with
// zero remote calls, its scheduled writes cancelled with it; a confirmed
// node is also deleted from the remote store immediately.
func (e *Editor) DiscardNode(id valueobjects.NodeID) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.discardLocked(id)
}

// DeleteNode is the delete gesture: history-worthy, so the pre-mutation
// state is captured before the node and its links are removed.
func (e *Editor) DeleteNode(id valueobjects.NodeID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.graph.HasNode(id) {
		err := pkgerrors.NewNotFoundError("node")
		e.notifier.Notify(notifications.Error("%v", err))
		return err
	}
	e.history.Capture(e.graph)
	if err := e.discardLocked(id); err != nil {
		return err
	}
	e.notifier.Notify(notifications.Success("node deleted"))
	return nil
}

func (e *Editor) discardLocked(id valueobjects.NodeID) error {
	if !e.graph.HasNode(id) {
		err := pkgerrors.NewNotFoundError("node")
		e.notifier.Notify(notifications.Error("%v", err))
		return err
	}

	wasPending := e.pending.Remove(id)
	e.scheduler.Cancel(nodeKey(id))
	removedLinks, _ := e.graph.RemoveNode(id)
	if len(removedLinks) > 0 {
		e.logger.Debug("removed links with node",
			zap.String("node", id.String()),
			zap.Int("links", len(removedLinks)),
		)
	}

	if !wasPending {
		// Link rows cascade server-side on node deletion.
		e.remoteWrite(nodeKey(id), "node", "delete", "delete node", func(ctx context.Context) error {
			return e.remote.DeleteNode(ctx, id)
		})
		e.touchProjectLocked()
	}
	return nil
}

// BeginDrag captures history once at drag start, so undo returns the node
// to where the drag began, not to an intermediate position.
func (e *Editor) BeginDrag(id valueobjects.NodeID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.graph.HasNode(id) {
		return pkgerrors.NewNotFoundError("node")
	}
	e.history.Capture(e.graph)
	return nil
}

// DragNode applies one continuous position update. Confirmed nodes route
// through the write-back scheduler keyed by node id, so a burst of drag
// events within one quiet period becomes a single remote update carrying the
// final position. A pending node just moves locally: its position rides the
// eventual create payload.
func (e *Editor) DragNode(id valueobjects.NodeID, pos valueobjects.Position) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	node, ok := e.graph.Node(id)
	if !ok {
		return pkgerrors.NewNotFoundError("node")
	}
	node.MoveTo(pos)

	if !e.pending.Contains(id) {
		e.scheduleNodeUpdate(node)
	}
	return nil
}

// Connect is the connect gesture: a discrete event, so the link is created
// locally and on the remote store immediately, never debounced. Both
// endpoints must exist in local state; they may still be pending.
func (e *Editor) Connect(source, target valueobjects.NodeID, kind valueobjects.LinkKind) (valueobjects.LinkID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !kind.IsValid() {
		err := pkgerrors.NewValidationError("unknown link kind %q", kind)
		e.notifier.Notify(notifications.Error("%v", err))
		return valueobjects.LinkID{}, err
	}

	// Validate before capturing: a rejected gesture must not push a
	// snapshot or clear the redo list.
	link := entities.NewLink(e.projectID, source, target, kind)
	if !e.graph.HasNode(link.Source) || !e.graph.HasNode(link.Target) {
		err := pkgerrors.NewValidationError("both link endpoints must exist")
		e.notifier.Notify(notifications.Error("%v", err))
		return valueobjects.LinkID{}, err
	}

	e.history.Capture(e.graph)
	if err := e.graph.AddLink(link); err != nil {
		e.notifier.Notify(notifications.Error("%v", err))
		return valueobjects.LinkID{}, err
	}

	payload := link.Clone()
	e.remoteWrite(linkKey(link.ID), "link", "create", "create link", func(ctx context.Context) error {
		_, err := e.remote.CreateLink(ctx, payload)
		return err
	})
	e.touchProjectLocked()

	e.notifier.Notify(notifications.Success("link created"))
	return link.ID, nil
}

// DeleteLink removes a link locally and issues an immediate remote delete.
func (e *Editor) DeleteLink(id valueobjects.LinkID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.graph.Link(id); !ok {
		err := pkgerrors.NewNotFoundError("link")
		e.notifier.Notify(notifications.Error("%v", err))
		return err
	}

	e.history.Capture(e.graph)
	e.graph.RemoveLink(id)

	e.remoteWrite(linkKey(id), "link", "delete", "delete link", func(ctx context.Context) error {
		return e.remote.DeleteLink(ctx, id)
	})
	e.touchProjectLocked()

	e.notifier.Notify(notifications.Success("link deleted"))
	return nil
}

// Undo restores the most recent past snapshot. The scheduler is flushed
// first so a late-firing debounced write cannot clobber the restored state.
// Restoration is local only: the remote store is not reconciled.
func (e *Editor) Undo() {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Flush completes before the restoration swaps the graph; the dispatch
	// closures carry their own payload copies, so the swap cannot corrupt
	// an eagerly issued write.
	e.scheduler.Flush()

	if !e.history.CanUndo() {
		e.notifier.Notify(notifications.Info("nothing to undo"))
		return
	}
	snap := e.history.Undo(e.graph.Snapshot())
	e.history.beginRestore()
	e.graph.Restore(snap)
	e.history.endRestore()

	e.notifier.Notify(notifications.Success("undo"))
}

// Redo restores the most recent future snapshot, symmetric to Undo.
func (e *Editor) Redo() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.scheduler.Flush()

	if !e.history.CanRedo() {
		e.notifier.Notify(notifications.Info("nothing to redo"))
		return
	}
	snap := e.history.Redo(e.graph.Snapshot())
	e.history.beginRestore()
	e.graph.Restore(snap)
	e.history.endRestore()

	e.notifier.Notify(notifications.Success("redo"))
}

// ViewNode selects the node whose attachment list the side panel shows.
func (e *Editor) ViewNode(id valueobjects.NodeID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.graph.HasNode(id) {
		return pkgerrors.NewNotFoundError("node")
	}
	e.viewed = id
	e.rebuildViewedLocked()
	return nil
}

// ViewedAttachments returns the attachment metadata of the viewed node.
func (e *Editor) ViewedAttachments() []*entities.Attachment {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]*entities.Attachment, len(e.viewedAttachments))
	copy(out, e.viewedAttachments)
	return out
}

// ArmRelocation enters the relocation mode for an attachment: the next
// activate gesture on another node moves it there. Arming while already
// armed silently replaces the prior target.
func (e *Editor) ArmRelocation(id valueobjects.AttachmentID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	att, ok := e.attachments[id]
	if !ok {
		err := pkgerrors.NewNotFoundError("attachment")
		e.notifier.Notify(notifications.Error("%v", err))
		return err
	}
	e.reloc.Arm(att.ID, att.Filename, att.NodeID)
	e.notifier.Notify(notifications.Hint("double-click a node to move %q there", att.Filename))
	return nil
}

// RelocationArmed reports whether a relocation is in flight.
func (e *Editor) RelocationArmed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reloc.Armed()
}

// CancelRelocation returns the relocation mode to idle with no remote
// effect.
func (e *Editor) CancelRelocation() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.reloc.Armed() {
		e.reloc.Cancel()
		e.notifier.Notify(notifications.Info("attachment move cancelled"))
	}
}

// CompleteRelocation finishes an armed relocation onto the target node.
// Moving an attachment onto its current owner is rejected locally and the
// relocation stays armed. Otherwise the ownership update goes to the remote
// store and, on success, the global attachment cache and the viewed node's
// list are patched together before the mode returns to idle. On remote
// failure local state is untouched and the relocation stays armed.
func (e *Editor) CompleteRelocation(ctx context.Context, target valueobjects.NodeID) error {
	e.mu.Lock()

	if !e.reloc.Armed() {
		e.mu.Unlock()
		return pkgerrors.NewValidationError("no attachment move in progress")
	}
	if !e.graph.HasNode(target) {
		e.mu.Unlock()
		err := pkgerrors.NewNotFoundError("target node")
		e.notifier.Notify(notifications.Error("%v", err))
		return err
	}
	if e.reloc.Source().Equals(target) {
		e.mu.Unlock()
		err := pkgerrors.NewValidationError("attachment already belongs to this node")
		e.notifier.Notify(notifications.Error("%v", err))
		return err
	}

	attID := e.reloc.Attachment()
	filename := e.reloc.Filename()
	source := e.reloc.Source()
	e.mu.Unlock()

	// The ownership update is a discrete, response-driven call: the caches
	// are only patched once the remote store confirms the move.
	updated, err := e.remote.UpdateAttachmentOwner(ctx, attID, target)
	e.metrics.ObserveRemoteCall("attachment", "move", err)
	if err != nil {
		e.notifier.Notify(notifications.Error("failed to move %q: %v", filename, err))
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// A cancel or re-arm may have happened while the call was in flight;
	// the caches still reflect the confirmed move.
	e.attachments[updated.ID] = updated
	if node, ok := e.graph.Node(source); ok {
		node.RemoveAttachment(attID)
	}
	if node, ok := e.graph.Node(target); ok {
		node.AddAttachment(attID)
	}
	if e.reloc.Armed() && e.reloc.Attachment().Equals(attID) {
		e.reloc.Cancel()
	}
	e.rebuildViewedLocked()

	e.notifier.Notify(notifications.Success("moved %q", filename))
	return nil
}

// Flush synchronously dispatches every outstanding debounced write. Invoked
// on teardown of the editing surface.
func (e *Editor) Flush() {
	e.scheduler.Flush()
}

// Close flushes outstanding writes and waits for in-flight remote dispatches
// to finish. Only teardown waits on the remote store.
func (e *Editor) Close() {
	e.scheduler.Flush()
	e.dispatcher.Wait()
}

// Graph exposes the live graph for rendering. Callers must treat it as
// read-only outside the editor's methods.
func (e *Editor) Graph() *aggregates.Graph {
	return e.graph
}

// Pending reports whether a node is still unconfirmed.
func (e *Editor) Pending(id valueobjects.NodeID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending.Contains(id)
}

// scheduleNodeUpdate coalesces a field or position edit into the write-back
// scheduler. The dispatch carries its own clone of the node as it stood at
// schedule time; a newer schedule for the same node replaces it entirely.
func (e *Editor) scheduleNodeUpdate(node *entities.Node) {
	payload := node.Clone()
	e.scheduler.Schedule(nodeKey(node.ID), func() {
		e.remoteWrite(nodeKey(payload.ID), "node", "update", "update node", func(ctx context.Context) error {
			_, err := e.remote.UpdateNode(ctx, payload)
			return err
		})
	})
}

// touchProjectLocked stamps the active project and coalesces a metadata
// write, so a burst of structural edits updates last_updated once.
func (e *Editor) touchProjectLocked() {
	if e.project == nil {
		return
	}
	payload := e.project.Updated().Clone()
	e.scheduler.Schedule(projectKey(payload.ID), func() {
		e.remoteWrite(projectKey(payload.ID), "project", "update", "update project", func(ctx context.Context) error {
			_, err := e.remote.UpdateProject(ctx, payload)
			return err
		})
	})
}

// remoteWrite dispatches a fire-and-forget write, ordered per entity key.
// The result never touches graph state: a failure is logged, surfaced to the
// user and dropped.
func (e *Editor) remoteWrite(key, entity, op, desc string, call func(context.Context) error) {
	e.dispatcher.Enqueue(key, func() {
		err := call(context.Background())
		e.metrics.ObserveRemoteCall(entity, op, err)
		if err != nil {
			e.logger.Error("remote write failed",
				zap.String("entity", entity),
				zap.String("op", op),
				zap.Error(err),
			)
			e.notifier.Notify(notifications.Error("failed to %s: %v", desc, err))
		}
	})
}

func (e *Editor) rebuildViewedLocked() {
	e.viewedAttachments = e.viewedAttachments[:0]
	if e.viewed.IsZero() {
		return
	}
	for _, att := range e.attachments {
		if att.NodeID.Equals(e.viewed) {
			e.viewedAttachments = append(e.viewedAttachments, att)
		}
	}
	sort.Slice(e.viewedAttachments, func(i, j int) bool {
		return e.viewedAttachments[i].Created.Before(e.viewedAttachments[j].Created)
	})
}

func nodeKey(id valueobjects.NodeID) string       { return "node/" + id.String() }
func linkKey(id valueobjects.LinkID) string       { return "link/" + id.String() }
func projectKey(id valueobjects.ProjectID) string { return "project/" + id.String() }
