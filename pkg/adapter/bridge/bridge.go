// Package bridge is the exec-style boundary between a host transport and
// the entry operations engine.
//
// A host drives the bridge with (action, args) pairs. The bridge unwraps
// transport argument quirks, coerces positional arguments, dispatches to
// the engine or the resolver, and serializes every failure as a numeric
// error code. No native error detail crosses this boundary.
package bridge

import (
	"context"
	"errors"

	"github.com/marmos91/filebridge/internal/logger"
	"github.com/marmos91/filebridge/pkg/entry"
	"github.com/marmos91/filebridge/pkg/entry/local"
	"github.com/marmos91/filebridge/pkg/entry/resolver"
)

// Bridge dispatches named operations to the engine and resolver.
type Bridge struct {
	engine   *local.Engine
	resolver *resolver.Resolver
}

// New builds a bridge over the given engine and resolver.
func New(engine *local.Engine, res *resolver.Resolver) *Bridge {
	return &Bridge{engine: engine, resolver: res}
}

// Exec runs one named operation with its ordered positional arguments.
//
// args may arrive doubly wrapped; the extra layer is stripped before
// dispatch. Failures are always *entry.Error values.
func (b *Bridge) Exec(ctx context.Context, action string, args []any) (any, error) {
	args = normalizeArgs(args)

	result, err := b.dispatch(ctx, action, args)
	if err != nil {
		var typed *entry.Error
		if !errors.As(err, &typed) {
			// Argument coercion failures never reach the engine; they
			// surface as syntax errors.
			typed = entry.WrapError(entry.ErrSyntax, "invalid arguments", action, err)
		}
		logger.Debug("EXEC failed: action=%s code=%s error=%v", action, typed.Code, err)
		return nil, typed
	}
	return result, nil
}

func (b *Bridge) dispatch(ctx context.Context, action string, args []any) (any, error) {
	switch action {
	case "readEntries":
		dirPath, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		return b.engine.ReadEntries(ctx, dirPath)

	case "getFile", "getDirectory":
		parentPath, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		name, err := argString(args, 1)
		if err != nil {
			return nil, err
		}
		opts, err := argOptions(args, 2)
		if err != nil {
			return nil, err
		}
		if action == "getDirectory" {
			return b.engine.GetDirectory(ctx, parentPath, name, opts)
		}
		return b.engine.GetFile(ctx, parentPath, name, opts)

	case "getFileMetadata":
		path, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		return b.engine.GetFileMetadata(ctx, path)

	case "getMetadata":
		path, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		return b.engine.GetMetadata(ctx, path)

	case "setMetadata":
		path, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		mtime, err := argModificationTime(args, 1)
		if err != nil {
			return nil, err
		}
		return nil, b.engine.SetMetadata(ctx, path, mtime)

	case "write":
		path, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		data, err := argBytes(args, 1)
		if err != nil {
			return nil, err
		}
		position, err := argInt64(args, 2)
		if err != nil {
			return nil, err
		}
		return b.engine.Write(ctx, path, data, position)

	case "readAsText":
		path, encoding, start, end, err := readTextArgs(args)
		if err != nil {
			return nil, err
		}
		return b.engine.ReadAsText(ctx, path, encoding, start, end)

	case "readAsDataURL":
		path, start, end, err := readRangeArgs(args)
		if err != nil {
			return nil, err
		}
		return b.engine.ReadAsDataURL(ctx, path, start, end)

	case "readAsBinaryString":
		path, start, end, err := readRangeArgs(args)
		if err != nil {
			return nil, err
		}
		return b.engine.ReadAsBinaryString(ctx, path, start, end)

	case "readAsArrayBuffer":
		path, start, end, err := readRangeArgs(args)
		if err != nil {
			return nil, err
		}
		return b.engine.ReadAsArrayBuffer(ctx, path, start, end)

	case "remove":
		path, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		return nil, b.engine.Remove(ctx, path)

	case "removeRecursively":
		path, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		return nil, b.engine.RemoveRecursively(ctx, path)

	case "truncate":
		path, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		size, err := argInt64(args, 1)
		if err != nil {
			return nil, err
		}
		return b.engine.Truncate(ctx, path, size)

	case "getParent":
		path, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		return b.engine.GetParent(ctx, path)

	case "copyTo", "moveTo":
		srcPath, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		dstDir, err := argString(args, 1)
		if err != nil {
			return nil, err
		}
		dstName, err := argString(args, 2)
		if err != nil {
			return nil, err
		}
		if action == "moveTo" {
			return b.engine.MoveTo(ctx, srcPath, dstDir, dstName)
		}
		return b.engine.CopyTo(ctx, srcPath, dstDir, dstName)

	case "resolveLocalFileSystemURI":
		uri, err := argString(args, 0)
		if err != nil {
			return nil, err
		}
		return b.resolver.Resolve(ctx, uri)

	case "requestAllPaths":
		return b.resolver.Roots().All(), nil

	default:
		return nil, entry.NewError(entry.ErrSyntax, "unknown operation", action)
	}
}

// readRangeArgs extracts (path, startPos, endPos).
func readRangeArgs(args []any) (string, int64, int64, error) {
	path, err := argString(args, 0)
	if err != nil {
		return "", 0, 0, err
	}
	start, err := argInt64(args, 1)
	if err != nil {
		return "", 0, 0, err
	}
	end, err := argInt64(args, 2)
	if err != nil {
		return "", 0, 0, err
	}
	return path, start, end, nil
}

// readTextArgs extracts (path, [encoding], startPos, endPos); the encoding
// argument is optional and positional.
func readTextArgs(args []any) (string, string, int64, int64, error) {
	path, err := argString(args, 0)
	if err != nil {
		return "", "", 0, 0, err
	}
	if len(args) == 3 {
		start, err := argInt64(args, 1)
		if err != nil {
			return "", "", 0, 0, err
		}
		end, err := argInt64(args, 2)
		if err != nil {
			return "", "", 0, 0, err
		}
		return path, "", start, end, nil
	}
	encoding, err := argString(args, 1)
	if err != nil {
		return "", "", 0, 0, err
	}
	start, err := argInt64(args, 2)
	if err != nil {
		return "", "", 0, 0, err
	}
	end, err := argInt64(args, 3)
	if err != nil {
		return "", "", 0, 0, err
	}
	return path, encoding, start, end, nil
}
